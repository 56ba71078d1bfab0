package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/cel-go/cel"

	"forgescope/internal/catalog"
	"forgescope/internal/export"
	"forgescope/internal/filter"
	"forgescope/internal/history"
	"forgescope/internal/i18n"
	"forgescope/internal/scoring"
	"forgescope/internal/scoring/preset"
	"forgescope/internal/session"
)

// sessionCookie — name of the cookie carrying the session token.
const sessionCookie = "fs_session"

// ApiV1Router manages routes for API version 1: the building catalog,
// per-session scoring inputs, scoring passes, and exports. All endpoints
// follow a REST-like structure.
type ApiV1Router struct {
	// buildings — the loaded dataset; read-only snapshot for the process
	// lifetime.
	buildings []catalog.Building
	// stats — per-era attribute ranges computed once at startup.
	stats map[string]map[string]catalog.Range
	// filterEnv — CEL environment for expression filters.
	filterEnv *cel.Env
	// presets — shipped weight presets, in file order.
	presets []preset.Preset
	// sessions — per-token store of city context and weight profile.
	sessions *session.Repository
	// historyRepo — dataset collector for completed scoring passes.
	historyRepo history.Repository
	// translator — display-name resolution; never consulted by scoring.
	translator *i18n.Translator
	// static — path to directory with static files (empty disables).
	static string
	// sqlitePath — target of the SQLite snapshot export (empty disables).
	sqlitePath string
}

// Mux returns a configured *http.ServeMux with registered handlers.
func (ar *ApiV1Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sessions", ar.sessionCreateHandler)
	mux.HandleFunc("GET /api/v1/context", ar.contextGetHandler)
	mux.HandleFunc("PUT /api/v1/context", ar.contextPutHandler)
	mux.HandleFunc("GET /api/v1/weights", ar.weightsGetHandler)
	mux.HandleFunc("PUT /api/v1/weights", ar.weightsPutHandler)
	mux.HandleFunc("GET /api/v1/presets", ar.presetsHandler)
	mux.HandleFunc("POST /api/v1/weights/presets/{name}", ar.presetApplyHandler)
	mux.HandleFunc("GET /api/v1/buildings", ar.buildingsHandler)
	mux.HandleFunc("GET /api/v1/scores", ar.scoresHandler)
	mux.HandleFunc("GET /api/v1/history", ar.historyHandler)
	mux.HandleFunc("GET /api/v1/eras/stats", ar.eraStatsHandler)
	mux.HandleFunc("GET /api/v1/export", ar.exportHandler)
	mux.HandleFunc("POST /api/v1/export/sqlite", ar.sqliteExportHandler)

	if len(ar.static) != 0 {
		fs := http.FileServer(http.Dir(ar.static))
		mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	}

	return mux
}

// session resolves the request's session from the token cookie. Writes the
// error status itself: 422 when the cookie is missing, 404 when the token is
// unknown or expired.
func (ar *ApiV1Router) session(w http.ResponseWriter, r *http.Request) (string, *session.Session, bool) {
	var token string
	for _, cookie := range r.Cookies() {
		if cookie.Name == sessionCookie {
			token = cookie.Value
			break
		}
	}

	if len(token) == 0 {
		slog.Warn("Empty session token")
		w.WriteHeader(http.StatusUnprocessableEntity)
		return "", nil, false
	}

	s, found := ar.sessions.Get(token)
	if !found {
		slog.Warn("Unknown session token", "token", token)
		w.WriteHeader(http.StatusNotFound)
		return "", nil, false
	}
	return token, s, true
}

func (ar *ApiV1Router) writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Unable to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// filtered applies the query filters (era, event, name, expr) to the
// dataset, preserving dataset order.
func (ar *ApiV1Router) filtered(r *http.Request) ([]catalog.Building, error) {
	q := r.URL.Query()
	criteria := filter.Criteria{
		Era:   q.Get("era"),
		Event: q.Get("event"),
		Name:  q.Get("name"),
	}
	buildings := criteria.Apply(ar.buildings)

	if expr := q.Get("expr"); expr != "" {
		f, err := filter.Compile(ar.filterEnv, expr)
		if err != nil {
			return nil, err
		}
		buildings = f.Apply(buildings)
	}
	return buildings, nil
}

// sessionCreateHandler issues a new session and sets the token cookie.
func (ar *ApiV1Router) sessionCreateHandler(w http.ResponseWriter, r *http.Request) {
	token, _ := ar.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	ar.writeJSON(w, map[string]string{"token": token})
}

// contextGetHandler returns the session's city context.
func (ar *ApiV1Router) contextGetHandler(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := ar.session(w, r)
	if !ok {
		return
	}
	ar.writeJSON(w, map[string]float64(sess.Context()))
}

// contextPutHandler replaces the session's city context. The body is a JSON
// object mapping resource categories to daily production. Unknown resource
// categories are rejected; negative values are clamped by the store.
func (ar *ApiV1Router) contextPutHandler(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := ar.session(w, r)
	if !ok {
		return
	}

	values, ok := readBodyMap(w, r)
	if !ok {
		return
	}

	known := make(map[string]bool, len(scoring.Resources))
	for _, resource := range scoring.Resources {
		known[resource] = true
	}
	for resource := range values {
		if !known[resource] {
			slog.Warn("Unknown city resource", "resource", resource)
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
	}

	sess.SetContext(values)
	ar.writeJSON(w, map[string]float64(sess.Context()))
}

// weightsGetHandler returns the session's weight profile.
func (ar *ApiV1Router) weightsGetHandler(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := ar.session(w, r)
	if !ok {
		return
	}
	ar.writeJSON(w, map[string]float64(sess.Weights()))
}

// weightsPutHandler replaces the session's weight profile. The body is a
// JSON object mapping attribute keys to signed weights; any attribute key is
// accepted since unweighted attributes simply contribute nothing.
func (ar *ApiV1Router) weightsPutHandler(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := ar.session(w, r)
	if !ok {
		return
	}

	values, ok := readBodyMap(w, r)
	if !ok {
		return
	}

	sess.SetWeights(scoring.WeightProfile(values))
	ar.writeJSON(w, map[string]float64(sess.Weights()))
}

// presetsHandler lists the shipped weight presets.
func (ar *ApiV1Router) presetsHandler(w http.ResponseWriter, r *http.Request) {
	names := make([]string, len(ar.presets))
	for i := range ar.presets {
		names[i] = ar.presets[i].Name
	}
	ar.writeJSON(w, map[string][]string{"presets": names})
}

// presetApplyHandler resolves a preset against the era from the query and
// installs it as the session's weight profile.
func (ar *ApiV1Router) presetApplyHandler(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := ar.session(w, r)
	if !ok {
		return
	}

	name := r.PathValue("name")
	var found *preset.Preset
	for i := range ar.presets {
		if ar.presets[i].Name == name {
			found = &ar.presets[i]
			break
		}
	}
	if found == nil {
		slog.Warn("Unknown preset", "name", name)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	era := r.URL.Query().Get("era")
	if era != "" && !catalog.IsEra(era) {
		slog.Warn("Unknown era", "era", era)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	weights := found.Resolve(era)
	sess.SetWeights(weights)
	ar.writeJSON(w, map[string]float64(weights))
}

// buildingView is the listing representation of one building.
type buildingView struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Era        string             `json:"era"`
	Event      string             `json:"event"`
	Size       float64            `json:"size"`
	RoadTiles  float64            `json:"road_tiles"`
	Footprint  float64            `json:"footprint"`
	Limited    string             `json:"limited"`
	AllyRoom   string             `json:"ally_room"`
	Attributes map[string]float64 `json:"attributes"`
}

// buildingsHandler lists the catalog with the query filters applied.
// The lang parameter translates building and era names for display.
func (ar *ApiV1Router) buildingsHandler(w http.ResponseWriter, r *http.Request) {
	buildings, err := ar.filtered(r)
	if err != nil {
		slog.Warn("Invalid filter expression", "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	lang := r.URL.Query().Get("lang")
	views := make([]buildingView, len(buildings))
	for i := range buildings {
		b := &buildings[i]
		views[i] = buildingView{
			ID:         b.ID,
			Name:       ar.translator.BuildingName(b.Name, lang),
			Era:        ar.translator.Era(b.Era, lang),
			Event:      b.Event,
			Size:       b.Size(),
			RoadTiles:  b.RoadTiles,
			Footprint:  b.Footprint(),
			Limited:    b.Limited,
			AllyRoom:   b.AllyRoom,
			Attributes: b.Attributes,
		}
	}
	ar.writeJSON(w, views)
}

// score runs a scoring pass for the session over the filtered dataset and
// records it. Results are sorted by efficiency unless sort=none keeps the
// dataset order.
func (ar *ApiV1Router) score(w http.ResponseWriter, r *http.Request) ([]export.Row, bool) {
	token, sess, ok := ar.session(w, r)
	if !ok {
		return nil, false
	}

	buildings, err := ar.filtered(r)
	if err != nil {
		slog.Warn("Invalid filter expression", "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return nil, false
	}

	weights := sess.Weights()
	city := sess.Context()
	results := scoring.Score(buildings, weights, city)
	if r.URL.Query().Get("sort") != "none" {
		scoring.SortByEfficiency(results)
	}

	summary := session.PassSummary{At: time.Now(), Buildings: len(results)}
	for _, res := range results {
		if res.Unranked {
			continue
		}
		if summary.TopID == "" || res.Efficiency > summary.TopEfficiency {
			summary.TopID = res.Building.ID
			summary.TopEfficiency = res.Efficiency
		}
	}
	sess.RecordPass(summary)
	ar.historyRepo.Append(token, weights, city, summary)

	return export.Rows(results, ar.translator, r.URL.Query().Get("lang")), true
}

// scoresHandler returns the scored buildings for the session.
func (ar *ApiV1Router) scoresHandler(w http.ResponseWriter, r *http.Request) {
	rows, ok := ar.score(w, r)
	if !ok {
		return
	}
	ar.writeJSON(w, rows)
}

// historyHandler returns the session's recorded scoring passes.
func (ar *ApiV1Router) historyHandler(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := ar.session(w, r)
	if !ok {
		return
	}
	ar.writeJSON(w, sess.History())
}

// eraStatsHandler returns per-era min/max attribute statistics.
func (ar *ApiV1Router) eraStatsHandler(w http.ResponseWriter, r *http.Request) {
	ar.writeJSON(w, ar.stats)
}

// exportHandler streams the scored dataset in the requested format.
// Supported formats: json (default), csv, xlsx.
func (ar *ApiV1Router) exportHandler(w http.ResponseWriter, r *http.Request) {
	rows, ok := ar.score(w, r)
	if !ok {
		return
	}

	var err error
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="buildings.json"`)
		err = export.WriteJSON(w, rows)
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="buildings.csv"`)
		err = export.WriteCSV(w, rows)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="buildings.xlsx"`)
		err = export.WriteXLSX(w, rows)
	default:
		slog.Warn("Unsupported export format", "format", format)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		slog.Warn("Export failed", "error", err)
	}
}

// sqliteExportHandler writes the scored dataset snapshot to the configured
// SQLite database.
func (ar *ApiV1Router) sqliteExportHandler(w http.ResponseWriter, r *http.Request) {
	if ar.sqlitePath == "" {
		slog.Warn("SQLite export is not configured")
		w.WriteHeader(http.StatusNotFound)
		return
	}

	rows, ok := ar.score(w, r)
	if !ok {
		return
	}

	if err := export.WriteSQLite(ar.sqlitePath, rows); err != nil {
		slog.Error("SQLite export failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	ar.writeJSON(w, map[string]any{"path": ar.sqlitePath, "rows": len(rows)})
}

// readBodyMap reads the request body as a JSON object of numbers. Writes the
// error status itself on failure.
func readBodyMap(w http.ResponseWriter, r *http.Request) (map[string]float64, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Warn("Empty request body", "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return nil, false
	}

	defer r.Body.Close()

	values := make(map[string]float64)
	if err := json.Unmarshal(body, &values); err != nil {
		slog.Warn("Unable to unmarshal request body", "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return nil, false
	}
	return values, true
}

// NewApiV1Router creates a new API v1 router.
// Parameters:
// - buildings: loaded building dataset
// - filterEnv: CEL environment for expression filters
// - presets: shipped weight presets
// - sessions: session store
// - historyRepo: scoring history collector
// - translator: display-name translator
// - static: path to static files (can be empty)
// - sqlitePath: SQLite snapshot target (can be empty)
//
// Returns pointer to configured ApiV1Router.
func NewApiV1Router(
	buildings []catalog.Building,
	filterEnv *cel.Env,
	presets []preset.Preset,
	sessions *session.Repository,
	historyRepo history.Repository,
	translator *i18n.Translator,
	static string,
	sqlitePath string,
) *ApiV1Router {
	return &ApiV1Router{
		buildings:   buildings,
		stats:       catalog.EraStats(buildings),
		filterEnv:   filterEnv,
		presets:     presets,
		sessions:    sessions,
		historyRepo: historyRepo,
		translator:  translator,
		static:      static,
		sqlitePath:  sqlitePath,
	}
}
