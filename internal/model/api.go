package model

import "time"

// Raw payload shapes of the store API. Users and products arrive as flat
// arrays with nested sub-objects; carts nest a one-to-many product list.

type RawName struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type RawAddress struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Number  int    `json:"number"`
	Zipcode string `json:"zipcode"`
}

type RawUser struct {
	ID       int         `json:"id"`
	Email    string      `json:"email"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Phone    string      `json:"phone"`
	Name     *RawName    `json:"name"`
	Address  *RawAddress `json:"address"`
}

type RawProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

type RawCartLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type RawCart struct {
	ID       int           `json:"id"`
	UserID   int           `json:"userId"`
	Date     time.Time     `json:"date"`
	Products []RawCartLine `json:"products"`
}
