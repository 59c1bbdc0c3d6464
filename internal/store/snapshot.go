package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// YearFileInfo 已导入财年的文件信息
type YearFileInfo struct {
	Year       string    `json:"year"`
	Variant    string    `json:"variant"`
	ImportedAt time.Time `json:"importedAt"`
}

// mentionColumns 类别列名与固定类别顺序一一对应
var mentionColumns = []string{
	"product", "place", "partnership", "esg", "performance",
	"digital", "pricing", "promotion", "people", "awards",
}

// ReplaceYear 以事务整体替换一个财年的快照
func (s *Store) ReplaceYear(ds *model.YearDataset) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := deleteYearTx(tx, ds.Year); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO year_files (year, variant, imported_at) VALUES (?, ?, ?)`,
		ds.Year, string(ds.Variant), time.Now(),
	); err != nil {
		return fmt.Errorf("failed to insert year file: %w", err)
	}

	mentionStmt, err := tx.Prepare(`INSERT INTO mention_rows
		(year, maison, row_order, product, place, partnership, esg, performance,
		 digital, pricing, promotion, people, awards, total_mentions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare mention insert: %w", err)
	}
	defer mentionStmt.Close()

	for i, rec := range ds.Mentions {
		args := []interface{}{ds.Year, rec.Maison, i}
		for _, c := range model.Categories {
			args = append(args, rec.Count(c))
		}
		args = append(args, rec.TotalMentions)
		if _, err := mentionStmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert mention row %q: %w", rec.Maison, err)
		}
	}

	detailStmt, err := tx.Prepare(`INSERT INTO detail_activities
		(year, maison, category, seq, activity) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare detail insert: %w", err)
	}
	defer detailStmt.Close()

	for _, rec := range ds.Details {
		for _, c := range model.Categories {
			for seq, activity := range rec.Activities[c] {
				if _, err := detailStmt.Exec(ds.Year, rec.Maison, string(c), seq+1, activity); err != nil {
					return fmt.Errorf("failed to insert detail row %q/%s: %w", rec.Maison, c, err)
				}
			}
		}
	}

	return tx.Commit()
}

// DeleteYear 删除一个财年的快照
func (s *Store) DeleteYear(year string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := deleteYearTx(tx, year); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteYearTx(tx *sql.Tx, year string) error {
	for _, table := range []string{"year_files", "mention_rows", "detail_activities"} {
		if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE year = ?`, table), year); err != nil {
			return fmt.Errorf("failed to clear %s for %s: %w", table, year, err)
		}
	}
	return nil
}

// ListYearFiles 列出已导入的财年文件信息
func (s *Store) ListYearFiles() ([]YearFileInfo, error) {
	rows, err := s.db.Query(`SELECT year, variant, imported_at FROM year_files ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("failed to query year files: %w", err)
	}
	defer rows.Close()

	out := make([]YearFileInfo, 0)
	for rows.Next() {
		var info YearFileInfo
		if err := rows.Scan(&info.Year, &info.Variant, &info.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan year file: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// LoadYear 读取一个财年的快照（未导入时返回 nil）
func (s *Store) LoadYear(year string) (*model.YearDataset, error) {
	var variant string
	err := s.db.QueryRow(`SELECT variant FROM year_files WHERE year = ?`, year).Scan(&variant)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query year file: %w", err)
	}

	ds := &model.YearDataset{
		Year:     year,
		Variant:  model.FileVariant(variant),
		Mentions: []*model.MentionRecord{},
		Details:  []*model.DetailRecord{},
	}

	if err := s.loadMentions(ds); err != nil {
		return nil, err
	}
	if err := s.loadDetails(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadAllYears 读取全部已导入财年的快照
func (s *Store) LoadAllYears() (map[string]*model.YearDataset, error) {
	infos, err := s.ListYearFiles()
	if err != nil {
		return nil, err
	}

	datasets := make(map[string]*model.YearDataset, len(infos))
	for _, info := range infos {
		ds, err := s.LoadYear(info.Year)
		if err != nil {
			return nil, err
		}
		if ds != nil {
			datasets[info.Year] = ds
		}
	}
	return datasets, nil
}

func (s *Store) loadMentions(ds *model.YearDataset) error {
	query := `SELECT maison, product, place, partnership, esg, performance,
		digital, pricing, promotion, people, awards
		FROM mention_rows WHERE year = ? ORDER BY row_order`

	rows, err := s.db.Query(query, ds.Year)
	if err != nil {
		return fmt.Errorf("failed to query mention rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec := &model.MentionRecord{
			Year:   ds.Year,
			Counts: make(map[model.Category]int, len(model.Categories)),
		}
		counts := make([]int, len(mentionColumns))
		dest := []interface{}{&rec.Maison}
		for i := range counts {
			dest = append(dest, &counts[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan mention row: %w", err)
		}
		for i, c := range model.Categories {
			rec.Counts[c] = counts[i]
		}
		rec.RecomputeTotal()
		ds.Mentions = append(ds.Mentions, rec)
	}
	return rows.Err()
}

func (s *Store) loadDetails(ds *model.YearDataset) error {
	rows, err := s.db.Query(
		`SELECT maison, category, activity FROM detail_activities
		 WHERE year = ? ORDER BY maison, category, seq`, ds.Year)
	if err != nil {
		return fmt.Errorf("failed to query detail rows: %w", err)
	}
	defer rows.Close()

	byMaison := make(map[string]*model.DetailRecord)
	order := make([]string, 0)

	for rows.Next() {
		var maison, category, activity string
		if err := rows.Scan(&maison, &category, &activity); err != nil {
			return fmt.Errorf("failed to scan detail row: %w", err)
		}
		rec, ok := byMaison[maison]
		if !ok {
			rec = &model.DetailRecord{
				Maison:     maison,
				Year:       ds.Year,
				Activities: make(map[model.Category][]string),
			}
			byMaison[maison] = rec
			order = append(order, maison)
		}
		c := model.Category(category)
		rec.Activities[c] = append(rec.Activities[c], activity)
	}

	for _, maison := range order {
		ds.Details = append(ds.Details, byMaison[maison])
	}
	return rows.Err()
}
