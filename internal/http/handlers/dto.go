package handlers

type ProductRequest struct {
	Id          int     `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	SKU         string  `json:"sku,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

type ProductResponse struct {
	Id            int     `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	SKU           string  `json:"sku,omitempty"`
	Category      string  `json:"category,omitempty"`
	Description   string  `json:"description,omitempty"`
	Image         string  `json:"image,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	LowStock      bool    `json:"low_stock,omitempty"`
	CriticalStock bool    `json:"critical_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type SaleRequest struct {
	ProductID     int    `json:"product_id"`
	Quantity      int    `json:"quantity"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes,omitempty"`
}

type SaleResponse struct {
	Id            int     `json:"id"`
	ProductID     int     `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Total         float64 `json:"total"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerEmail string  `json:"customer_email"`
	Notes         string  `json:"notes,omitempty"`
	Date          string  `json:"date"`
}

type SalesSearchResult struct {
	Data []SaleResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
