package repository

import (
	"context"

	"github.com/EGASHIRAAkihide/karada/internal/models"
)

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

type CreateClientInput struct {
	Name  string
	Email string
}

func (r *ClientRepository) Create(ctx context.Context, input CreateClientInput) (*models.Client, error) {
	query := `
		INSERT INTO clients (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, created_at
	`
	var client models.Client
	err := r.db.QueryRow(ctx, query, input.Name, input.Email).
		Scan(&client.ID, &client.Name, &client.Email, &client.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	query := `
		SELECT id, name, email, created_at
		FROM clients
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Email, &client.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `
		SELECT id, name, email, created_at
		FROM clients
		WHERE id = $1
	`
	var client models.Client
	err := r.db.QueryRow(ctx, query, id).
		Scan(&client.ID, &client.Name, &client.Email, &client.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, id int64, input CreateClientInput) (*models.Client, error) {
	query := `
		UPDATE clients
		SET name = $1, email = $2
		WHERE id = $3
		RETURNING id, name, email, created_at
	`
	var client models.Client
	err := r.db.QueryRow(ctx, query, input.Name, input.Email, id).
		Scan(&client.ID, &client.Name, &client.Email, &client.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ClientRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
