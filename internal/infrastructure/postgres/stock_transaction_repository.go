package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const transactionColumns = `id, product_id, quantity, type, notes, reference_number,
	unit_price, discount, is_wastage, wastage,
	supplier_ref, supplier, supplier_contact, client_ref, client, client_contact, date`

// StockTransactionRepo implementación del puerto del ledger sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: los asientos son inmutables.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create agrega un asiento al ledger.
func (r *StockTransactionRepo) Create(t *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ProductID, t.Quantity, t.Type,
		nullIfEmpty(t.Notes), nullIfEmpty(t.ReferenceNumber),
		t.UnitPrice, t.Discount, t.IsWastage, t.Wastage,
		nullIfEmpty(t.Supplier.RefID), nullIfEmpty(t.Supplier.Name), nullIfEmpty(t.Supplier.Contact),
		nullIfEmpty(t.Client.RefID), nullIfEmpty(t.Client.Name), nullIfEmpty(t.Client.Contact),
		t.Date,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *StockTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+transactionColumns+` FROM stock_transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return t, nil
}

// List lista asientos descendentes por fecha con paginación.
func (r *StockTransactionRepo) List(limit, offset int) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions ORDER BY date DESC LIMIT $1 OFFSET $2`
	return r.listQuery(query, limit, offset)
}

// ListByFilter consulta del motor de reportes. Construye el WHERE de forma
// incremental según los criterios presentes; orden descendente por fecha.
//
// Nota sobre supplier_id/client_id: cuando el asiento no tiene referencia
// estructurada, el ID dado se compara como substring (case-insensitive)
// contra el campo de texto libre legacy. Es una rareza heredada que se
// conserva por compatibilidad con datos registrados antes de que existieran
// Supplier/Client como registros propios.
func (r *StockTransactionRepo) ListByFilter(f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE 1=1`
	var args []any
	pos := 1

	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		// cota superior exclusiva: el caso de uso ya sumó un día a la fecha fin
		query += fmt.Sprintf(" AND date < $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.SupplierID != "" {
		query += fmt.Sprintf(" AND (supplier_ref = $%d OR (supplier_ref IS NULL AND supplier ILIKE '%%' || $%d || '%%'))", pos, pos)
		args = append(args, f.SupplierID)
		pos++
	}
	if f.ClientID != "" {
		query += fmt.Sprintf(" AND (client_ref = $%d OR (client_ref IS NULL AND client ILIKE '%%' || $%d || '%%'))", pos, pos)
		args = append(args, f.ClientID)
		pos++
	}
	if f.ProductType != "" {
		query += fmt.Sprintf(" AND product_id IN (SELECT id FROM products WHERE type = $%d)", pos)
		args = append(args, f.ProductType)
		pos++
	}
	query += " ORDER BY date DESC"

	return r.listQuery(query, args...)
}

// ListBySupplierRef lista asientos con referencia estructurada al proveedor.
func (r *StockTransactionRepo) ListBySupplierRef(supplierID string) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE supplier_ref = $1 ORDER BY date DESC`
	return r.listQuery(query, supplierID)
}

// ListByClientRef lista asientos con referencia estructurada al cliente.
func (r *StockTransactionRepo) ListByClientRef(clientID string) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE client_ref = $1 ORDER BY date DESC`
	return r.listQuery(query, clientID)
}

// DistinctProductIDsBySupplier productos distintos en transacciones del proveedor.
func (r *StockTransactionRepo) DistinctProductIDsBySupplier(supplierID string) ([]string, error) {
	return r.distinctProducts(`SELECT DISTINCT product_id FROM stock_transactions WHERE supplier_ref = $1`, supplierID)
}

// DistinctProductIDsByClient productos distintos en transacciones del cliente.
func (r *StockTransactionRepo) DistinctProductIDsByClient(clientID string) ([]string, error) {
	return r.distinctProducts(`SELECT DISTINCT product_id FROM stock_transactions WHERE client_ref = $1`, clientID)
}

func (r *StockTransactionRepo) distinctProducts(query, arg string) ([]string, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("distinct products: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// WastageStats agregados sobre los asientos marcados como merma.
func (r *StockTransactionRepo) WastageStats() (*repository.WastageTotals, error) {
	const query = `
		SELECT COALESCE(SUM(quantity * unit_price), 0),
		       COALESCE(SUM(quantity), 0),
		       COUNT(*)
		FROM stock_transactions WHERE is_wastage`
	var w repository.WastageTotals
	err := r.q.QueryRow(context.Background(), query).Scan(&w.Value, &w.Quantity, &w.Count)
	if err != nil {
		return nil, fmt.Errorf("wastage stats: %w", err)
	}
	return &w, nil
}

func (r *StockTransactionRepo) listQuery(query string, args ...any) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// scanTransaction lee una fila de stock_transactions en la entidad.
func scanTransaction(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	var notes, refNum *string
	var supplierRef, supplier, supplierContact *string
	var clientRef, client, clientContact *string
	err := row.Scan(
		&t.ID, &t.ProductID, &t.Quantity, &t.Type, &notes, &refNum,
		&t.UnitPrice, &t.Discount, &t.IsWastage, &t.Wastage,
		&supplierRef, &supplier, &supplierContact,
		&clientRef, &client, &clientContact, &t.Date,
	)
	if err != nil {
		return nil, err
	}
	t.Notes = orEmpty(notes)
	t.ReferenceNumber = orEmpty(refNum)
	t.Supplier = entity.PartyRef{RefID: orEmpty(supplierRef), Name: orEmpty(supplier), Contact: orEmpty(supplierContact)}
	t.Client = entity.PartyRef{RefID: orEmpty(clientRef), Name: orEmpty(client), Contact: orEmpty(clientContact)}
	return &t, nil
}
