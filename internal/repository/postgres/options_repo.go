package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"rating-service/internal/domain/settings"
)

// Option names kept from the original widget configuration, one row per
// option with a JSON value.
const (
	optTitle                 = "rplus_ratings_options_title"
	optBtnLabelPositive      = "rplus_ratings_options_btn_label_positive"
	optBtnLabelNegative      = "rplus_ratings_options_btn_label_negative"
	optPostTypes             = "rplus_ratings_options_posttypes_select"
	optFeedbackPositive      = "rplus_ratings_options_feedback_positive"
	optFeedbackNegative      = "rplus_ratings_options_feedback_negative"
	optFeedbackPositiveDescr = "rplus_ratings_options_feedback_positive_descr"
	optFeedbackNegativeDescr = "rplus_ratings_options_feedback_negative_descr"
	optFeedbackReply         = "rplus_ratings_options_feedback_reply"
	optFeedbackReplyDescr    = "rplus_ratings_options_feedback_reply_descr"
)

type OptionsRepo struct {
	db *sql.DB
}

func NewOptionsRepo(db *sql.DB) *OptionsRepo {
	return &OptionsRepo{db: db}
}

// Load starts from defaults and overrides every option present in storage,
// so partially configured installs still render sensibly.
func (r *OptionsRepo) Load(ctx context.Context) (settings.Settings, error) {
	s := settings.Defaults()

	rows, err := r.db.QueryContext(ctx, `SELECT name, value FROM options`)
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var raw []byte
		if err := rows.Scan(&name, &raw); err != nil {
			return s, err
		}
		if err := applyOption(&s, name, raw); err != nil {
			return s, err
		}
	}
	return s, rows.Err()
}

func (r *OptionsRepo) Save(ctx context.Context, s settings.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	opts := map[string]any{
		optTitle:                 s.Title,
		optBtnLabelPositive:      s.BtnLabelPositive,
		optBtnLabelNegative:      s.BtnLabelNegative,
		optPostTypes:             s.PostTypes,
		optFeedbackPositive:      s.FeedbackPositive,
		optFeedbackNegative:      s.FeedbackNegative,
		optFeedbackPositiveDescr: s.FeedbackPositiveDescr,
		optFeedbackNegativeDescr: s.FeedbackNegativeDescr,
		optFeedbackReply:         s.FeedbackReply,
		optFeedbackReplyDescr:    s.FeedbackReplyDescr,
	}

	for name, value := range opts {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO options (name, value)
            VALUES ($1, $2)
            ON CONFLICT (name) DO UPDATE
            SET value = excluded.value, updated_at = now()
        `, name, raw)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func applyOption(s *settings.Settings, name string, raw []byte) error {
	switch name {
	case optTitle:
		return json.Unmarshal(raw, &s.Title)
	case optBtnLabelPositive:
		return json.Unmarshal(raw, &s.BtnLabelPositive)
	case optBtnLabelNegative:
		return json.Unmarshal(raw, &s.BtnLabelNegative)
	case optPostTypes:
		return json.Unmarshal(raw, &s.PostTypes)
	case optFeedbackPositive:
		return json.Unmarshal(raw, &s.FeedbackPositive)
	case optFeedbackNegative:
		return json.Unmarshal(raw, &s.FeedbackNegative)
	case optFeedbackPositiveDescr:
		return json.Unmarshal(raw, &s.FeedbackPositiveDescr)
	case optFeedbackNegativeDescr:
		return json.Unmarshal(raw, &s.FeedbackNegativeDescr)
	case optFeedbackReply:
		return json.Unmarshal(raw, &s.FeedbackReply)
	case optFeedbackReplyDescr:
		return json.Unmarshal(raw, &s.FeedbackReplyDescr)
	}
	// unknown options are ignored
	return nil
}
