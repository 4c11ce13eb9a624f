package catalog

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/codegym/product-catalog/app/navigation"
	"github.com/codegym/product-catalog/app/web"
)

const loadFailed = "Không thể tải dữ liệu từ máy chủ. Vui lòng thử lại!"

type page struct {
	Notice     string
	Error      string
	Keyword    string
	CategoryID string
	Categories []web.Option
	Rows       []Row
}

type Handler struct {
	view   *View
	signal *navigation.Signal
	render *web.Renderer
}

func NewHandler(view *View, signal *navigation.Signal, render *web.Renderer) *Handler {
	return &Handler{view: view, signal: signal, render: render}
}

// Routes mounts the catalog screen on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandleIndex)
	r.Get("/search", h.HandleSearch)
	r.Get("/export.xlsx", h.HandleExport)
}

// HandleIndex reloads the catalog on every arrival, clearing any search,
// and shows the notice of a pending refresh once.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ev, refresh := h.signal.Consume()

	status := http.StatusOK
	var errMsg string
	if err := h.view.Load(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Bool("refresh", refresh).Msg("load catalog")
		status, errMsg = http.StatusBadGateway, loadFailed
	}

	p := h.page()
	p.Notice = ev.Notice
	p.Error = errMsg
	h.render.Render(w, r, status, web.PageCatalog, p)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword, categoryID := q.Get("keyword"), q.Get("categoryId")

	if !h.view.Loaded() {
		if err := h.view.Load(r.Context()); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("load catalog")
			p := h.page()
			p.Error = loadFailed
			h.render.Render(w, r, http.StatusBadGateway, web.PageCatalog, p)
			return
		}
	}

	status := http.StatusOK
	var errMsg string
	if err := h.view.Search(r.Context(), keyword, categoryID); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("keyword", keyword).Str("category_id", categoryID).Msg("search catalog")
		status, errMsg = http.StatusBadGateway, loadFailed
	}

	p := h.page()
	p.Error = errMsg
	if errMsg != "" {
		// the displayed list is unchanged; echo what the user asked for
		p.Keyword, p.CategoryID = keyword, categoryID
	}
	h.render.Render(w, r, status, web.PageCatalog, p)
}

// HandleExport downloads the displayed rows as an Excel workbook.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	rows := h.view.State().Rows

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, rows); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("export catalog")
		http.Error(w, "failed to export products", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	_, _ = buf.WriteTo(w)
	hlog.FromRequest(r).Debug().Int("rows", len(rows)).Msg("catalog exported")
}

func (h *Handler) page() page {
	st := h.view.State()
	opts := make([]web.Option, len(st.Categories))
	for i, c := range st.Categories {
		opts[i] = web.Option{Value: c.ID.String(), Label: c.Name}
	}
	return page{
		Keyword:    st.Keyword,
		CategoryID: st.CategoryID,
		Categories: opts,
		Rows:       st.Rows,
	}
}
