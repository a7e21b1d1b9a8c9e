package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, type, quantity, buying_price, selling_price, price,
	location, expiry_date, batch_number, barcode, minimum_stock_level, unit_of_measure,
	wastage, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.SKU, nullIfEmpty(p.Type), p.Quantity,
		p.BuyingPrice, p.SellingPrice, p.Price,
		nullIfEmpty(p.Location), p.ExpiryDate, nullIfEmpty(p.BatchNumber), nullIfEmpty(p.Barcode),
		p.MinimumStockLevel, p.UnitOfMeasure, p.Wastage, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Es el lock que serializa el motor de ledger por producto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los atributos del catálogo. No toca quantity ni wastage:
// esas columnas se mutan solo desde el motor de ledger.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, type = $4, buying_price = $5,
			selling_price = $6, price = $7, location = $8, expiry_date = $9,
			batch_number = $10, barcode = $11, minimum_stock_level = $12,
			unit_of_measure = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.SKU, nullIfEmpty(p.Type), p.BuyingPrice, p.SellingPrice, p.Price,
		nullIfEmpty(p.Location), p.ExpiryDate, nullIfEmpty(p.BatchNumber), nullIfEmpty(p.Barcode),
		p.MinimumStockLevel, p.UnitOfMeasure, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (usado por el motor de ledger
// dentro de la transacción que inserta el asiento).
func (r *ProductRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListLowStock lista productos con quantity <= threshold.
func (r *ProductRepo) ListLowStock(threshold int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity <= $1 ORDER BY quantity ASC`
	return r.list(query, threshold)
}

// ListByIDs lista los productos cuyos IDs están en el conjunto dado.
func (r *ProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY name`
	return r.list(query, ids)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Stats agregados para GET /products/stats. El umbral de stock bajo es fijo (5).
func (r *ProductRepo) Stats() (*repository.ProductStats, error) {
	const query = `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity * price), 0),
		       COUNT(*) FILTER (WHERE quantity <= 5)
		FROM products`
	var s repository.ProductStats
	err := r.q.QueryRow(context.Background(), query).Scan(&s.TotalProducts, &s.TotalValue, &s.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	return &s, nil
}

// WastageTotal suma el acumulador de merma de todos los productos.
func (r *ProductRepo) WastageTotal() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(wastage), 0) FROM products`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("product wastage total: %w", err)
	}
	return total, nil
}

// scanProduct lee una fila de products en la entidad.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var typ, location, batch, barcode *string
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &typ, &p.Quantity,
		&p.BuyingPrice, &p.SellingPrice, &p.Price,
		&location, &p.ExpiryDate, &batch, &barcode,
		&p.MinimumStockLevel, &p.UnitOfMeasure, &p.Wastage, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Type = orEmpty(typ)
	p.Location = orEmpty(location)
	p.BatchNumber = orEmpty(batch)
	p.Barcode = orEmpty(barcode)
	return &p, nil
}
