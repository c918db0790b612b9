package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// AnalyticsRepo serves the read-only dashboard tables.  The booking core
// never writes these; they are populated by an out-of-band reporting job.
type AnalyticsRepo struct {
	db *sql.DB
}

// NewAnalyticsRepo constructs an AnalyticsRepo with the given DB handle.
func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

// ListEarnings returns all revenue breakdown rows.
func (r *AnalyticsRepo) ListEarnings(ctx context.Context) ([]model.Earnings, error) {
	const q = `SELECT product_sales, subscription_fees, service_charges, miscellaneous FROM earnings`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Earnings
	for rows.Next() {
		var e model.Earnings
		if err := rows.Scan(&e.ProductSales, &e.SubscriptionFees, &e.ServiceCharges, &e.Miscellaneous); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// ListTicketStats returns the per-show ticket analytics rows.
func (r *AnalyticsRepo) ListTicketStats(ctx context.Context) ([]model.TicketStat, error) {
	const q = `SELECT name, tickets, resolution_time FROM ticket_stats`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.TicketStat
	for rows.Next() {
		var t model.TicketStat
		if err := rows.Scan(&t.Name, &t.Tickets, &t.ResolutionTime); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// ListProfit returns the per-show profit rows.
func (r *AnalyticsRepo) ListProfit(ctx context.Context) ([]model.ProfitRow, error) {
	const q = `SELECT name, earning, cost, profit FROM profit`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.ProfitRow
	for rows.Next() {
		var p model.ProfitRow
		if err := rows.Scan(&p.Name, &p.Earning, &p.Cost, &p.Profit); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
