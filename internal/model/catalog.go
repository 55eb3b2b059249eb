package model

// Book is a catalog entry as served by the bookstore API.
type Book struct {
	ID           ID      `json:"id"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Description  string  `json:"description"`
	PicturePath  string  `json:"picture_path"`
	Price        Decimal `json:"price"`
	Pages        ID      `json:"pages"`
	Language     string  `json:"language"`
	Publisher    string  `json:"publisher"`
	Year         ID      `json:"year"`
	CategoryName string  `json:"category_name,omitempty"`
	Rating       Decimal `json:"rating,omitempty"`
}

// Item returns the reference the cart coordinator needs for this book.
func (b Book) Item() Item {
	return Item{ID: string(b.ID), Price: float64(b.Price)}
}

// Category groups books; donations pick one category and one subcategory.
type Category struct {
	ID            ID            `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategory"`
}

type Subcategory struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
