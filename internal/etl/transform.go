package etl

import (
	"time"

	"fakestore-etl/internal/model"
	apperrors "fakestore-etl/pkg/errors"
)

// TransformUsers flattens raw users into one row each, pulling the nested
// name and address fields up to the fixed column set and stamping both
// timestamp columns with the run time.
func TransformUsers(users []model.RawUser, now time.Time) ([]model.UserRow, error) {
	rows := make([]model.UserRow, 0, len(users))
	for _, u := range users {
		if u.ID == 0 {
			return nil, apperrors.TransformError{Dataset: "users", Field: "id"}
		}
		if u.Name == nil {
			return nil, apperrors.TransformError{Dataset: "users", Field: "name"}
		}
		if u.Address == nil {
			return nil, apperrors.TransformError{Dataset: "users", Field: "address"}
		}
		rows = append(rows, model.UserRow{
			UserID:    int64(u.ID),
			FirstName: u.Name.Firstname,
			LastName:  u.Name.Lastname,
			UserName:  u.Username,
			Email:     u.Email,
			Password:  u.Password,
			Phone:     u.Phone,
			City:      u.Address.City,
			Street:    u.Address.Street,
			Number:    int64(u.Address.Number),
			Zipcode:   u.Address.Zipcode,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return rows, nil
}

// TransformProducts renames id to product_id and title to product_name.
func TransformProducts(products []model.RawProduct, now time.Time) ([]model.ProductRow, error) {
	rows := make([]model.ProductRow, 0, len(products))
	for _, p := range products {
		if p.ID == 0 {
			return nil, apperrors.TransformError{Dataset: "products", Field: "id"}
		}
		if p.Title == "" {
			return nil, apperrors.TransformError{Dataset: "products", Field: "title"}
		}
		rows = append(rows, model.ProductRow{
			ProductID:   int64(p.ID),
			ProductName: p.Title,
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
			Price:       p.Price,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return rows, nil
}

// TransformCarts flattens the one-to-many cart relationship: every
// product line inside a cart becomes one row joining the cart's id,
// user and date with that line's product and quantity. Timestamps are
// stamped per emitted row. An empty cart list yields an empty table.
func TransformCarts(carts []model.RawCart, now time.Time) ([]model.CartLineRow, error) {
	var rows []model.CartLineRow
	for _, cart := range carts {
		if cart.ID == 0 {
			return nil, apperrors.TransformError{Dataset: "carts", Field: "id"}
		}
		for _, line := range cart.Products {
			if line.ProductID == 0 {
				return nil, apperrors.TransformError{Dataset: "carts", Field: "productId"}
			}
			rows = append(rows, model.CartLineRow{
				CartID:    int64(cart.ID),
				UserID:    int64(cart.UserID),
				ProductID: int64(line.ProductID),
				Quantity:  int64(line.Quantity),
				Date:      cart.Date,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}
	return rows, nil
}
