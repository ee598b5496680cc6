package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mbolis/formpilot/fault"
	"github.com/mbolis/formpilot/model"
	"github.com/pkg/errors"
)

// Missing and foreign-owned forms are reported the same way, so callers
// cannot probe for the existence of other users' forms.
var errUnauthorizedOrNotFound = fault.New(fault.Authorization, "Unauthorized or Form Not Found")

type FormRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewFormRepository(db *sqlx.DB) *FormRepository {
	return &FormRepository{db: db, now: time.Now}
}

func (r *FormRepository) Create(ctx context.Context, ownerID, name string, fields []model.Field) (model.Form, error) {
	if err := model.ValidateForm(name, fields); err != nil {
		return model.Form{}, err
	}

	id, err := newID()
	if err != nil {
		return model.Form{}, err
	}
	form := model.Form{
		ID:        id,
		Name:      name,
		Fields:    model.NormalizeFields(fields),
		OwnerID:   ownerID,
		CreatedAt: timestamp(r.now),
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO forms (id, form_name, fields, user_id, created_at)
		VALUES (?, ?, ?, ?, ?)`),
		form.ID,
		form.Name,
		form.Fields,
		form.OwnerID,
		form.CreatedAt,
	)
	if err != nil {
		return model.Form{}, errors.Wrap(err, "insert form")
	}
	return form, nil
}

func (r *FormRepository) ListSummaries(ctx context.Context, ownerID string) ([]model.FormSummary, error) {
	summaries := []model.FormSummary{}
	err := r.db.SelectContext(ctx, &summaries, r.db.Rebind(`
		SELECT id, form_name, created_at
		FROM forms
		WHERE user_id = ?`),
		ownerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list forms")
	}
	return summaries, nil
}

// GetPublic returns a form to anyone. The owner is left out of the result.
func (r *FormRepository) GetPublic(ctx context.Context, formID string) (model.Form, error) {
	var form model.Form
	err := r.db.GetContext(ctx, &form, r.db.Rebind(`
		SELECT id, form_name, fields, created_at
		FROM forms
		WHERE id = ?`),
		formID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, fault.New(fault.NotFound, "Form Not Found")
	}
	if err != nil {
		return model.Form{}, errors.Wrap(err, "get form")
	}
	return form, nil
}

func (r *FormRepository) GetOwned(ctx context.Context, formID, ownerID string) (model.Form, error) {
	var form model.Form
	err := r.db.GetContext(ctx, &form, r.db.Rebind(`
		SELECT id, form_name, fields, user_id, created_at
		FROM forms
		WHERE id = ?
			AND user_id = ?`),
		formID,
		ownerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, errUnauthorizedOrNotFound
	}
	if err != nil {
		return model.Form{}, errors.Wrap(err, "get owned form")
	}
	return form, nil
}

// Update replaces name and fields wholesale.
func (r *FormRepository) Update(ctx context.Context, formID, ownerID, name string, fields []model.Field) error {
	if err := model.ValidateForm(name, fields); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE forms
		SET
			form_name = ?,
			fields = ?
		WHERE id = ?
			AND user_id = ?`),
		name,
		model.NormalizeFields(fields),
		formID,
		ownerID,
	)
	if err != nil {
		return errors.Wrap(err, "update form")
	}
	return expectOneRow(res, "update form")
}

// Delete removes the form. Its responses are kept.
func (r *FormRepository) Delete(ctx context.Context, formID, ownerID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		DELETE FROM forms
		WHERE id = ?
			AND user_id = ?`),
		formID,
		ownerID,
	)
	if err != nil {
		return errors.Wrap(err, "delete form")
	}
	return expectOneRow(res, "delete form")
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op+" verify")
	}
	if n < 1 {
		return errUnauthorizedOrNotFound
	}
	return nil
}
