package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"rewear-be/internal/logger"

	"go.uber.org/zap"
)

const productColumns = `product_id, user_id, product_name, price, description, category, size, material, photo, grade, status, quantity, upload_date`

type Repository interface {
	Insert(ctx context.Context, params InsertParams) (Product, error)
	GetByID(ctx context.Context, id int) (Product, error)
	GetDetail(ctx context.Context, id int) (Detail, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Search(ctx context.Context, filter SearchFilter) ([]Detail, error)
	UpdateGrade(ctx context.Context, id int, grade string) error
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func scanProduct(row interface{ Scan(...interface{}) error }) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.ProductName, &p.Price, &p.Description,
		&p.Category, &p.Size, &p.Material, &p.Photo, &p.Grade,
		&p.Status, &p.Quantity, &p.UploadDate,
	)
	return p, err
}

func (r *repository) Insert(ctx context.Context, params InsertParams) (Product, error) {
	log := logger.FromCtx(ctx)

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO products
		   (user_id, product_name, price, description, category, size, material, photo, grade, status, quantity, upload_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, $9, $10, $11)
		 RETURNING `+productColumns,
		params.UserID, params.ProductName, params.Price, params.Description,
		params.Category, params.Size, params.Material, params.Photo,
		StatusUnsold, params.Quantity, time.Now(),
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("db: failed to insert product",
			zap.Int("user_id", params.UserID),
			zap.Error(err),
		)
	}
	return p, err
}

func (r *repository) GetByID(ctx context.Context, id int) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return p, ErrProductNotFound
	}
	return p, err
}

func (r *repository) GetDetail(ctx context.Context, id int) (Detail, error) {
	var d Detail
	var email, address, location sql.NullString
	var rating sql.NullFloat64

	err := r.db.QueryRowContext(ctx,
		`SELECT p.product_id, p.user_id, p.product_name, p.price, p.description,
		        p.category, p.size, p.material, p.photo, p.grade, p.status,
		        p.quantity, p.upload_date,
		        u.user_id, u.user_name, u.email, u.address, u.location, u.rating
		 FROM products p
		 JOIN users u ON u.user_id = p.user_id
		 WHERE p.product_id = $1`,
		id,
	).Scan(
		&d.ID, &d.UserID, &d.ProductName, &d.Price, &d.Description,
		&d.Category, &d.Size, &d.Material, &d.Photo, &d.Grade,
		&d.Status, &d.Quantity, &d.UploadDate,
		&d.Seller.ID, &d.Seller.UserName, &email, &address, &location, &rating,
	)

	if err == sql.ErrNoRows {
		return d, ErrProductNotFound
	}
	if err != nil {
		return d, err
	}

	d.Seller.Email = email.String
	d.Seller.Address = address.String
	d.Seller.Location = location.String
	if d.Seller.Location == "" {
		d.Seller.Location = "Unknown"
	}
	d.Seller.Rating = rating.Float64

	return d, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	where := []string{}
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY upload_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// Search only surfaces unsold listings, newest first.
func (r *repository) Search(ctx context.Context, filter SearchFilter) ([]Detail, error) {
	query := `SELECT p.product_id, p.user_id, p.product_name, p.price, p.description,
	                 p.category, p.size, p.material, p.photo, p.grade, p.status,
	                 p.quantity, p.upload_date,
	                 u.user_id, u.user_name, u.location
	          FROM products p
	          JOIN users u ON u.user_id = p.user_id
	          WHERE p.status = $1`
	args := []interface{}{StatusUnsold}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(" AND (p.product_name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}
	if filter.Grade != nil {
		args = append(args, *filter.Grade)
		query += fmt.Sprintf(" AND p.grade = $%d", len(args))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		query += fmt.Sprintf(" AND p.price >= $%d", len(args))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		query += fmt.Sprintf(" AND p.price <= $%d", len(args))
	}

	query += " ORDER BY p.upload_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []Detail{}
	for rows.Next() {
		var d Detail
		var location sql.NullString

		err := rows.Scan(
			&d.ID, &d.UserID, &d.ProductName, &d.Price, &d.Description,
			&d.Category, &d.Size, &d.Material, &d.Photo, &d.Grade,
			&d.Status, &d.Quantity, &d.UploadDate,
			&d.Seller.ID, &d.Seller.UserName, &location,
		)
		if err != nil {
			return nil, err
		}

		d.Seller.Location = location.String
		if d.Seller.Location == "" {
			d.Seller.Location = "Unknown"
		}

		results = append(results, d)
	}

	return results, rows.Err()
}

func (r *repository) UpdateGrade(ctx context.Context, id int, grade string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET grade = $1 WHERE product_id = $2`,
		grade, id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
