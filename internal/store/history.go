package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auditoria/internal/model"
)

// ErrNotFound relatório inexistente
var ErrNotFound = errors.New("relatório não encontrado")

// reportLimits retenção por tipo, por loja e por balde de data
// (mesmo custom_date, ou custom_date nulo como balde próprio)
var reportLimits = map[model.ReportType]int{
	model.ReportAudit:        5,
	model.ReportAnalysis:     1,
	model.ReportClass:        1,
	model.ReportFinalRupture: 1,
}

const defaultLimit = 5

const timeLayout = time.RFC3339Nano

// InsertHistory aplica a política de retenção e grava o relatório.
// Rupturas são limitadas a uma por loja por semana civil (alinhada ao
// domingo): qualquer ruptura existente na semana é removida antes.
func (s *Store) InsertHistory(item *model.HistoryItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	switch item.ReportType {
	case model.ReportRupture, model.ReportFinalRupture:
		if err := evictWeekRuptures(tx, item); err != nil {
			return err
		}
	default:
		if err := evictOverLimit(tx, item); err != nil {
			return err
		}
	}

	statsJSON, _ := json.Marshal(item.Stats)
	dataJSON, _ := json.Marshal(item.Data)
	detailsJSON, _ := json.Marshal(item.ClassDetails)

	var categoryJSON, collabJSON sql.NullString
	if item.CategoryStats != nil {
		b, _ := json.Marshal(item.CategoryStats)
		categoryJSON = sql.NullString{String: string(b), Valid: true}
	}
	if item.CollaboratorStats != nil {
		b, _ := json.Marshal(item.CollaboratorStats)
		collabJSON = sql.NullString{String: string(b), Valid: true}
	}

	customDate := sql.NullString{String: item.CustomDate, Valid: item.CustomDate != ""}

	_, err = tx.Exec(`
		INSERT INTO audit_history (
			id, created_at, file_name, report_type, loja, custom_date,
			stats_json, data_json, class_details_json,
			category_stats_json, collaborator_stats_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID, item.Timestamp.Format(timeLayout), item.FileName,
		string(item.ReportType), item.Loja, customDate,
		string(statsJSON), string(dataJSON), string(detailsJSON),
		categoryJSON, collabJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// evictWeekRuptures remove rupturas da mesma loja na semana civil do item
func evictWeekRuptures(tx *sql.Tx, item *model.HistoryItem) error {
	sunday, saturday := weekBoundsOf(item.EffectiveDate())
	_, err := tx.Exec(`
		DELETE FROM audit_history
		WHERE loja = ? AND report_type = ? AND created_at >= ? AND created_at <= ?
	`, item.Loja, string(model.ReportRupture),
		sunday.Format(timeLayout), saturday.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to evict week ruptures: %w", err)
	}
	return nil
}

// evictOverLimit remove os mais antigos do mesmo balde até abrir espaço
func evictOverLimit(tx *sql.Tx, item *model.HistoryItem) error {
	limit, ok := reportLimits[item.ReportType]
	if !ok {
		limit = defaultLimit
	}

	query := `SELECT id FROM audit_history WHERE loja = ? AND report_type = ?`
	args := []interface{}{item.Loja, string(item.ReportType)}
	if item.CustomDate != "" {
		query += ` AND custom_date = ?`
		args = append(args, item.CustomDate)
	} else {
		query += ` AND custom_date IS NULL`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := tx.Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to query retention bucket: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(ids) < limit {
		return nil
	}
	toDelete := ids[:len(ids)-limit+1]
	for _, id := range toDelete {
		if _, err := tx.Exec(`DELETE FROM audit_history WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to evict item %s: %w", id, err)
		}
	}
	return nil
}

// weekBoundsOf janela [domingo 00:00, sábado 23:59:59.999] da data
func weekBoundsOf(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	sunday := time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -int(t.Weekday()))
	saturday := sunday.AddDate(0, 0, 6).
		Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
	return sunday, saturday
}

// ListHistory metadados leves (sem payloads), mais recentes primeiro.
// Loja vazia lista todas as lojas.
func (s *Store) ListHistory(loja string, limit int) ([]model.HistoryItem, error) {
	if limit <= 0 {
		limit = 500
	}

	query := `
		SELECT id, created_at, file_name, report_type, loja, custom_date, stats_json
		FROM audit_history`
	args := []interface{}{}
	if loja != "" {
		query += ` WHERE loja = ?`
		args = append(args, loja)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	items := []model.HistoryItem{}
	for rows.Next() {
		var (
			item       model.HistoryItem
			createdAt  string
			reportType string
			customDate sql.NullString
			statsJSON  string
		)
		if err := rows.Scan(&item.ID, &createdAt, &item.FileName, &reportType,
			&item.Loja, &customDate, &statsJSON); err != nil {
			return nil, err
		}
		item.Timestamp, _ = time.Parse(timeLayout, createdAt)
		item.ReportType = model.ReportType(reportType)
		item.CustomDate = customDate.String
		item.Data = []model.AuditRow{}
		if err := json.Unmarshal([]byte(statsJSON), &item.Stats); err != nil {
			return nil, fmt.Errorf("corrupt stats for item %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetHistoryItem carrega um relatório completo, payloads inclusos
func (s *Store) GetHistoryItem(id string) (*model.HistoryItem, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, file_name, report_type, loja, custom_date,
		       stats_json, data_json, class_details_json,
		       category_stats_json, collaborator_stats_json
		FROM audit_history WHERE id = ?
	`, id)

	var (
		item                     model.HistoryItem
		createdAt, reportType    string
		customDate               sql.NullString
		statsJSON, dataJSON      string
		detailsJSON              string
		categoryJSON, collabJSON sql.NullString
	)
	err := row.Scan(&item.ID, &createdAt, &item.FileName, &reportType, &item.Loja,
		&customDate, &statsJSON, &dataJSON, &detailsJSON, &categoryJSON, &collabJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history item: %w", err)
	}

	item.Timestamp, _ = time.Parse(timeLayout, createdAt)
	item.ReportType = model.ReportType(reportType)
	item.CustomDate = customDate.String

	if err := json.Unmarshal([]byte(statsJSON), &item.Stats); err != nil {
		return nil, fmt.Errorf("corrupt stats for item %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(dataJSON), &item.Data); err != nil {
		return nil, fmt.Errorf("corrupt data for item %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(detailsJSON), &item.ClassDetails); err != nil {
		return nil, fmt.Errorf("corrupt details for item %s: %w", id, err)
	}
	if categoryJSON.Valid {
		var cs model.CategoryStats
		if err := json.Unmarshal([]byte(categoryJSON.String), &cs); err == nil {
			item.CategoryStats = &cs
		}
	}
	if collabJSON.Valid {
		var cs model.CollaboratorStats
		if err := json.Unmarshal([]byte(collabJSON.String), &cs); err == nil {
			item.CollaboratorStats = cs
		}
	}

	return &item, nil
}

// UpdateCustomDate edita a data explícita de um relatório
func (s *Store) UpdateCustomDate(id, newDate string) error {
	res, err := s.db.Exec(`UPDATE audit_history SET custom_date = ? WHERE id = ?`, newDate, id)
	if err != nil {
		return fmt.Errorf("failed to update custom date: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteHistoryItem remove um relatório
func (s *Store) DeleteHistoryItem(id string) error {
	res, err := s.db.Exec(`DELETE FROM audit_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history item: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllHistory limpa o histórico de uma loja; loja vazia limpa tudo
func (s *Store) DeleteAllHistory(loja string) error {
	if loja == "" {
		_, err := s.db.Exec(`DELETE FROM audit_history`)
		return err
	}
	_, err := s.db.Exec(`DELETE FROM audit_history WHERE loja = ?`, loja)
	return err
}
