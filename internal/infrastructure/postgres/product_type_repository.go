package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implementación de ProductTypeRepository sobre PostgreSQL.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

// Create persiste una categoría. Name tiene constraint único.
func (r *ProductTypeRepo) Create(t *entity.ProductType) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO product_types (id, name) VALUES ($1, $2)`, t.ID, t.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product type: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *ProductTypeRepo) GetByID(id string) (*entity.ProductType, error) {
	var t entity.ProductType
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name FROM product_types WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &t, nil
}

// Update renombra una categoría.
func (r *ProductTypeRepo) Update(t *entity.ProductType) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_types SET name = $2 WHERE id = $1`, t.ID, t.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product type: %w", err)
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *ProductTypeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product type: %w", err)
	}
	return nil
}

// List lista categorías ordenadas por nombre.
func (r *ProductTypeRepo) List() ([]*entity.ProductType, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name FROM product_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductType
	for rows.Next() {
		var t entity.ProductType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
