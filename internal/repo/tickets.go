package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tixhook/internal/models"
)

type TicketsPG struct{ DB *pgxpool.Pool }

// Get returns ticket-type metadata. A missing ticket type is not an error:
// the flattener treats absent metadata as empty strings.
func (r *TicketsPG) Get(ctx context.Context, id int64) (models.TicketType, error) {
	var t models.TicketType
	err := r.DB.QueryRow(ctx, `select id, name, coalesce(description,'') from tickets where id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.TicketType{ID: id}, nil
	}
	return t, err
}

// Questions returns the ticket type's custom questions in display order.
func (r *TicketsPG) Questions(ctx context.Context, ticketID int64) ([]models.Question, error) {
	rows, err := r.DB.Query(ctx, `
		select id, title from questions
		where ticket_id = $1
		order by sort, id
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Title); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
