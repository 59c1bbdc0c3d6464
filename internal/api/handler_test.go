package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/config"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/normalize"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/source"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/store"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func mention(maison, year string, product, place int) *model.MentionRecord {
	r := &model.MentionRecord{
		Maison: maison,
		Year:   year,
		Counts: map[model.Category]int{
			model.CategoryProduct: product,
			model.CategoryPlace:   place,
		},
	}
	r.RecomputeTotal()
	return r
}

// newTestHandler 构造带两个已入库财年（2023/2024）的处理器和路由
func newTestHandler(t *testing.T) (*Handler, *gin.Engine, *store.Store, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	exportDir := t.TempDir()

	st, err := store.New(filepath.Join(t.TempDir(), "maisonlens.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	seed := []*model.YearDataset{
		{
			Year:    "2023",
			Variant: model.VariantOriginal,
			Mentions: []*model.MentionRecord{
				mention("Dior", "2023", 5, 2),
				mention("Fendi", "2023", 3, 1),
			},
		},
		{
			Year:    "2024",
			Variant: model.VariantStandardized,
			Mentions: []*model.MentionRecord{
				mention("Dior", "2024", 8, 3),
				mention("Bulgari", "2024", 4, 4),
			},
			Details: []*model.DetailRecord{
				{
					Maison: "Dior",
					Year:   "2024",
					Activities: map[model.Category][]string{
						model.CategoryProduct: {"Launched the new Lady Dior line"},
					},
				},
			},
		},
	}
	for _, ds := range seed {
		if err := st.ReplaceYear(ds); err != nil {
			t.Fatalf("seed year %s: %v", ds.Year, err)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Data.DataDir = dataDir
	cfg.Analysis.Periods = []string{"2023", "2024"}

	loader := source.NewLoader(dataDir, normalize.NewDefault(), source.NewMemoryCache())
	h := NewHandler(cfg, st, loader, quietLogger(), nil, exportDir)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return h, r, st, dataDir
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("unmarshal response: %v body=%s", err, w.Body.String())
		}
	}
	return w
}

func TestPeriods_ListAndSelect(t *testing.T) {
	_, r, _, _ := newTestHandler(t)

	var resp periodsResponse
	if w := doJSON(t, r, http.MethodGet, "/api/periods", nil, &resp); w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if len(resp.Available) != 2 || resp.Available[0] != "2023" || resp.Available[1] != "2024" {
		t.Fatalf("unexpected available periods: %v", resp.Available)
	}
	if resp.SelectedPeriod != "2024" {
		t.Fatalf("default selected period should be latest available, got %q", resp.SelectedPeriod)
	}

	if w := doJSON(t, r, http.MethodPost, "/api/periods/select", map[string]string{"period": "2023"}, nil); w.Code != http.StatusOK {
		t.Fatalf("select 2023 failed: %d body=%s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodGet, "/api/periods", nil, &resp); w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if resp.SelectedPeriod != "2023" {
		t.Fatalf("selected period not persisted, got %q", resp.SelectedPeriod)
	}

	// 无数据的财年不可选中
	if w := doJSON(t, r, http.MethodPost, "/api/periods/select", map[string]string{"period": "2019"}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("selecting empty period should fail, got %d", w.Code)
	}
}

func TestCrossYearRanking_ZeroFillAbsentMaison(t *testing.T) {
	_, r, _, _ := newTestHandler(t)

	var resp struct {
		Periods []string             `json:"periods"`
		Rows    []model.CrossYearRow `json:"rows"`
	}
	if w := doJSON(t, r, http.MethodGet, "/api/ranking", nil, &resp); w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	byMaison := make(map[string]model.CrossYearRow)
	for _, row := range resp.Rows {
		byMaison[row.Maison] = row
	}

	dior := byMaison["Dior"]
	cell := dior.Years["2024"]
	if cell.Mentions != 11 || cell.Rank == nil || *cell.Rank != 1 {
		t.Fatalf("unexpected Dior 2024 cell: %+v", cell)
	}

	// Fendi 在 2024 年缺席：计数 0、排名 null
	fendi := byMaison["Fendi"]
	cell = fendi.Years["2024"]
	if cell.Mentions != 0 || cell.Rank != nil {
		t.Fatalf("absent maison should be zero-filled with null rank: %+v", cell)
	}
}

func TestVerifyDiff_DetailsDrivenCounts(t *testing.T) {
	_, r, _, _ := newTestHandler(t)

	var resp model.VerifyDiffReport
	if w := doJSON(t, r, http.MethodGet, "/api/verify/diff?year=2024", nil, &resp); w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if resp.Year != "2024" {
		t.Fatalf("unexpected year: %q", resp.Year)
	}

	// 明细只有 Product 一条，原始计数为 8，应出现 8→1 的差异行
	found := false
	for _, row := range resp.Rows {
		if row.Maison == "Dior" && row.Category == model.CategoryProduct {
			found = true
			if row.Original != 8 || row.Verified != 1 || row.Difference != -7 {
				t.Fatalf("unexpected diff row: %+v", row)
			}
		}
	}
	if !found {
		t.Fatal("missing Dior/Product diff row")
	}

	// 2023 年无明细，应返回 404
	if w := doJSON(t, r, http.MethodGet, "/api/verify/diff?year=2023", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("diff without details should be 404, got %d", w.Code)
	}
}

func TestExport_DownloadTokenIsSingleUse(t *testing.T) {
	_, r, _, _ := newTestHandler(t)

	var resp struct {
		Token       string `json:"token"`
		File        string `json:"file"`
		DownloadURL string `json:"downloadUrl"`
	}
	if w := doJSON(t, r, http.MethodPost, "/api/export", nil, &resp); w.Code != http.StatusOK {
		t.Fatalf("export failed: %d body=%s", w.Code, w.Body.String())
	}
	if resp.Token == "" || resp.DownloadURL == "" {
		t.Fatalf("missing token in response: %+v", resp)
	}

	req := httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("download failed: %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("empty export body")
	}

	// 令牌一次性，再次下载应失效
	req = httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second download should be 404, got %d", w.Code)
	}
}

func TestRefresh_ImportsFromDataDir(t *testing.T) {
	_, r, _, dataDir := newTestHandler(t)

	writeMentionsWorkbook(t, filepath.Join(dataDir, source.MentionsFileName("2024", model.VariantOriginal)), [][]interface{}{
		{"Louis Vuitton", 6, 2},
		{"Bvlgari", 1, 1},
	})

	var result struct {
		YearsOK   []string `json:"yearsOk"`
		YearsSkip []string `json:"yearsSkip"`
		YearsErr  []string `json:"yearsErr"`
	}
	if w := doJSON(t, r, http.MethodPost, "/api/refresh", nil, &result); w.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d body=%s", w.Code, w.Body.String())
	}
	if len(result.YearsOK) != 1 || result.YearsOK[0] != "2024" {
		t.Fatalf("unexpected yearsOk: %v", result.YearsOK)
	}
	if len(result.YearsSkip) != 1 || result.YearsSkip[0] != "2023" {
		t.Fatalf("unexpected yearsSkip: %v", result.YearsSkip)
	}

	// 引擎已重建：出现归一化后的新 Maison
	var maisons struct {
		Maisons []string `json:"maisons"`
	}
	if w := doJSON(t, r, http.MethodGet, "/api/maisons", nil, &maisons); w.Code != http.StatusOK {
		t.Fatalf("list maisons failed: %d", w.Code)
	}
	want := map[string]bool{"Louis Vuitton": false, "Bulgari": false}
	for _, m := range maisons.Maisons {
		if _, ok := want[m]; ok {
			want[m] = true
		}
	}
	for m, seen := range want {
		if !seen {
			t.Fatalf("maison %q missing after refresh: %v", m, maisons.Maisons)
		}
	}
}

func TestExportDownloadStore_Expiry(t *testing.T) {
	t.Parallel()

	s := newExportDownloadStore()
	token := s.put("/tmp/a.xlsx", "a.xlsx", -time.Second)
	if _, ok := s.get(token); ok {
		t.Fatal("expired token should not resolve")
	}

	token = s.put("/tmp/b.xlsx", "b.xlsx", time.Minute)
	item, ok := s.get(token)
	if !ok || item.filePath != "/tmp/b.xlsx" || item.fileName != "b.xlsx" {
		t.Fatalf("unexpected item: %+v ok=%v", item, ok)
	}

	s.delete(token)
	if _, ok := s.get(token); ok {
		t.Fatal("deleted token should not resolve")
	}
}

// writeMentionsWorkbook 生成仅含 Product/Place 两列计数的提及工作簿
func writeMentionsWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"Maison"}
	for _, name := range model.CategoryNames() {
		header = append(header, name)
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		full := []interface{}{row[0], row[1], row[2]}
		if err := f.SetSheetRow("Sheet1", cell, &full); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}
