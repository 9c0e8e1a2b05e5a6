package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/cympfh/shanghai/internal/ledger"
	"github.com/cympfh/shanghai/internal/model"
)

// DashboardHandler renders the server-side HTML dashboard.
type DashboardHandler struct {
	svc      *ledger.Service
	logger   *slog.Logger
	basePath string
	tmpl     *template.Template
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *ledger.Service, logger *slog.Logger, basePath string) *DashboardHandler {
	return &DashboardHandler{
		svc:      svc,
		logger:   logger,
		basePath: basePath,
		tmpl:     template.Must(template.New("dashboard").Parse(dashboardTemplate)),
	}
}

// historyRow is a pre-digested history entry for the template.
type historyRow struct {
	ID        int
	IsPayment bool
	From      string
	To        string
	Amount    float64
	Note      string
}

type dashboardData struct {
	BasePath   string
	Accounts   []string
	Totals     []ledger.AccountTotal
	Settlement *ledger.Settlement
	History    []historyRow
}

// Dashboard handles GET {base}/.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}

	history, err := h.svc.History(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}

	data := dashboardData{
		BasePath:   h.basePath,
		Accounts:   h.svc.Accounts(),
		Totals:     summary.Totals,
		Settlement: summary.Settlement,
	}
	for _, entry := range history {
		row := historyRow{
			ID:        entry.ID,
			IsPayment: entry.Memo.Type == model.MemoTypePayment,
			From:      entry.Memo.FromAccount,
			To:        entry.Memo.ToAccount,
			Amount:    entry.Memo.AmountValue(),
			Note:      entry.Memo.Note,
		}
		data.History = append(data.History, row)
	}

	// Render to a buffer first so a template failure can still 500.
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("dashboard render failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *DashboardHandler) renderError(w http.ResponseWriter, err error) {
	h.logger.Error("dashboard data fetch failed", "error", err)
	http.Error(w, "journal unavailable", http.StatusBadGateway)
}

const dashboardTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>上海家計簿</title>
<style>
  body { font-family: sans-serif; max-width: 48rem; margin: 0 auto; padding: 1rem; }
  fieldset { border: 1px solid #ccc; border-radius: 6px; margin-bottom: 1rem; }
  .cards { display: flex; gap: 1rem; margin-bottom: 1rem; }
  .card { flex: 1; border: 1px solid #ccc; border-radius: 6px; padding: 0.8rem; }
  .card .value { font-size: 1.4rem; font-weight: bold; }
  .banner { padding: 0.6rem; border-radius: 6px; margin-bottom: 1rem; }
  .banner.ok { background: #e6f6e6; }
  .banner.warn { background: #fdf3d7; }
  table { width: 100%; border-collapse: collapse; }
  td, th { padding: 0.4rem; border-bottom: 1px solid #eee; text-align: left; }
  .badge { border-radius: 4px; padding: 0.1rem 0.4rem; font-size: 0.8rem; }
  .badge.id { background: #dbe9ff; }
  .badge.payment { background: #dcf3dc; }
  .badge.note { background: #ffe9cf; }
</style>
</head>
<body>
<h1>上海家計簿</h1>

<form method="post" action="{{.BasePath}}/memos">
  <fieldset>
    <legend>記帳</legend>
    <p>
      <label>種別
        <select name="memo_type">
          <option value="Payment">支払</option>
          <option value="Cancel">取消</option>
          <option value="Note">メモ</option>
        </select>
      </label>
    </p>
    <p>
      <label>送金元
        <select name="from_account">
          {{range .Accounts}}<option value="{{.}}">{{.}}</option>{{end}}
        </select>
      </label>
    </p>
    <p>送金先
      {{range .Accounts}}
      <label><input type="checkbox" name="to_account" value="{{.}}"> {{.}}</label>
      {{end}}
    </p>
    <p><label>金額 (元) <input type="number" name="amount" min="0" step="0.01"></label></p>
    <p><label>取消する支払のID <input type="number" name="cancel_id" min="0"></label></p>
    <p><label>備考 <input type="text" name="note"></label></p>
    <p><button type="submit">送信</button></p>
  </fieldset>
</form>

{{if .Totals}}
<div class="cards">
  {{range .Totals}}
  <div class="card">
    <div>{{.Account}} の支出</div>
    <div class="value">{{printf "%.2f" .Total}} 元</div>
  </div>
  {{end}}
</div>
{{end}}

{{with .Settlement}}
  {{if .Settled}}
  <div class="banner ok">債権は相殺されています。</div>
  {{else}}
  <div class="banner warn">{{.Creditor}} は {{.Debtor}} に対して {{printf "%g" .Amount}} 元の債権があります。</div>
  {{end}}
{{end}}

<h2>履歴</h2>
{{if .History}}
<table>
  {{range .History}}
  <tr>
    <td><span class="badge id">ID: {{.ID}}</span></td>
    {{if .IsPayment}}
    <td><span class="badge payment">支払</span></td>
    <td><strong>{{.From}}</strong> → <strong>{{.To}}</strong></td>
    <td><strong>{{printf "%g" .Amount}} 元</strong></td>
    <td>{{if .Note}}備考: {{.Note}}{{else}}備考: -{{end}}</td>
    {{else}}
    <td><span class="badge note">メモ</span></td>
    <td colspan="3"><strong>{{.Note}}</strong></td>
    {{end}}
  </tr>
  {{end}}
</table>
{{else}}
<p>履歴がありません</p>
{{end}}

</body>
</html>
`
