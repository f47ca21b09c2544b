package domain

// ProductDetail товар в клиентском представлении: с категорией, магазином и
// агрегатами по оценкам и продажам
type ProductDetail struct {
	Product
	Category        Category `json:"category"`
	Store           Store    `json:"store"`
	AverageRating   *float64 `json:"average_rating"`
	NumberPurchased int64    `json:"number_purchased"`
	Ratings         []Rating `json:"ratings"`
}

// OrderDetail заказ вместе с товарами и суммой по текущим ценам
type OrderDetail struct {
	Order
	Products []Product `json:"products"`
	Total    float64   `json:"total"`
}

// StoreDetail магазин вместе с продавцом и его товарами
type StoreDetail struct {
	Store
	Seller   User      `json:"seller"`
	Products []Product `json:"products"`
}

// PaymentTypeDetail способ оплаты с замаскированным номером счёта
type PaymentTypeDetail struct {
	PaymentType
	ObscuredNum string `json:"obscured_num"`
}
