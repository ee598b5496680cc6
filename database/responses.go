package database

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mbolis/formpilot/fault"
	"github.com/mbolis/formpilot/model"
	"github.com/pkg/errors"
)

// ResponseRepository is an append-only store of submitted answers.
// It does not check that the referenced form exists.
type ResponseRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewResponseRepository(db *sqlx.DB) *ResponseRepository {
	return &ResponseRepository{db: db, now: time.Now}
}

func (r *ResponseRepository) Submit(ctx context.Context, formID string, data model.ResponseData) (model.Response, error) {
	if strings.TrimSpace(formID) == "" {
		return model.Response{}, fault.NewValidation("Form ID is Required.")
	}
	if data == nil {
		data = model.ResponseData{}
	}

	id, err := newID()
	if err != nil {
		return model.Response{}, err
	}
	response := model.Response{
		ID:        id,
		FormID:    formID,
		Data:      data,
		CreatedAt: timestamp(r.now),
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO responses (id, form_id, response_data, created_at)
		VALUES (?, ?, ?, ?)`),
		response.ID,
		response.FormID,
		response.Data,
		response.CreatedAt,
	)
	if err != nil {
		return model.Response{}, errors.Wrap(err, "insert response")
	}
	return response, nil
}

func (r *ResponseRepository) ListByForm(ctx context.Context, formID string) ([]model.Response, error) {
	responses := []model.Response{}
	err := r.db.SelectContext(ctx, &responses, r.db.Rebind(`
		SELECT id, form_id, response_data, created_at
		FROM responses
		WHERE form_id = ?`),
		formID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list responses")
	}
	return responses, nil
}
