package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PradSharma554/forms/model"
)

type sqlStore struct {
	db *sql.DB
}

// New wraps an open database handle in a Store.
func New(db *sql.DB) Store {
	return &sqlStore{db}
}

func (s *sqlStore) ListForms(ctx context.Context, page, limit int) ([]model.Form, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM form`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count forms: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, created_at
		FROM form
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`,
		limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		f := model.Form{}
		err = rows.Scan(&f.ID, &f.Title, &f.Description, &f.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("list forms: scan: %w", err)
		}
		forms = append(forms, f)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list forms: %w", err)
	}

	for i := range forms {
		forms[i].Questions, err = s.findQuestions(ctx, forms[i].ID)
		if err != nil {
			return nil, 0, err
		}
	}
	return forms, total, nil
}

func (s *sqlStore) FindForm(ctx context.Context, id string) (model.Form, error) {
	f := model.Form{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, created_at
		FROM form
		WHERE id = ?`,
		id,
	).Scan(&f.ID, &f.Title, &f.Description, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, ErrNotFound
	}
	if err != nil {
		return model.Form{}, fmt.Errorf("find form: %w", err)
	}

	f.Questions, err = s.findQuestions(ctx, id)
	if err != nil {
		return model.Form{}, err
	}
	return f, nil
}

func (s *sqlStore) findQuestions(ctx context.Context, formID string) ([]model.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, type, required, options
		FROM form_question
		WHERE form_id = ?
		ORDER BY position`,
		formID,
	)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q := model.Question{}
		var opts string
		err = rows.Scan(&q.ID, &q.Title, &q.Type, &q.Required, &opts)
		if err != nil {
			return nil, fmt.Errorf("find questions: scan: %w", err)
		}
		if opts != "" {
			err = json.Unmarshal([]byte(opts), &q.Options)
			if err != nil {
				return nil, fmt.Errorf("find questions: parse options: %w", err)
			}
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	return questions, nil
}

func (s *sqlStore) SaveForm(ctx context.Context, form model.Form) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save form: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO form (id, title, description, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description`,
		form.ID, form.Title, form.Description, form.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save form: %w", err)
	}

	// rewrite the question rows wholesale, position carries list order
	_, err = tx.ExecContext(ctx, `
		DELETE FROM form_question
		WHERE form_id = ?`,
		form.ID,
	)
	if err != nil {
		return fmt.Errorf("save form: delete questions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO form_question (form_id, position, id, title, type, required, options)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save form: questions: prepare: %w", err)
	}
	defer stmt.Close()

	for i, q := range form.Questions {
		optionsJson, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("save form: questions: encode options: %w", err)
		}
		_, err = stmt.ExecContext(ctx, form.ID, i, q.ID, q.Title, string(q.Type), q.Required, string(optionsJson))
		if err != nil {
			return fmt.Errorf("save form: questions: insert: %w", err)
		}
	}

	return tx.Commit()
}

func (s *sqlStore) DeleteForm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM form WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete form: verify: %w", err)
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

func (s *sqlStore) FindResponses(ctx context.Context, formID string) ([]model.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, answers, submitted_at
		FROM response
		WHERE form_id = ?
		ORDER BY submitted_at, id`,
		formID,
	)
	if err != nil {
		return nil, fmt.Errorf("find responses: %w", err)
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		r := model.Response{}
		var answers string
		err = rows.Scan(&r.ID, &r.FormID, &answers, &r.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("find responses: scan: %w", err)
		}
		err = json.Unmarshal([]byte(answers), &r.Answers)
		if err != nil {
			return nil, fmt.Errorf("find responses: parse answers: %w", err)
		}
		responses = append(responses, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("find responses: %w", err)
	}
	return responses, nil
}

func (s *sqlStore) SaveResponse(ctx context.Context, resp model.Response) error {
	answersJson, err := json.Marshal(resp.Answers)
	if err != nil {
		return fmt.Errorf("save response: encode answers: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save response: begin tx: %w", err)
	}
	defer tx.Rollback()

	// re-check existence in the same tx as the insert, so a submit
	// racing a delete fails with not-found instead of orphaning a row
	var one int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM form WHERE id = ?`,
		resp.FormID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("save response: check form: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO response (id, form_id, answers, submitted_at)
		VALUES (?, ?, ?, ?)`,
		resp.ID, resp.FormID, string(answersJson), resp.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("save response: insert: %w", err)
	}

	return tx.Commit()
}
