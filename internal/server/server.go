// Package server exposes the portal data layer as a JSON API. Handlers
// validate input, call into services and encode results; all domain rules
// live below this layer.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/vnk23k-beep/Cyno25/internal/brochure"
	"github.com/vnk23k-beep/Cyno25/internal/catalog"
	"github.com/vnk23k-beep/Cyno25/internal/config"
	"github.com/vnk23k-beep/Cyno25/internal/export"
	"github.com/vnk23k-beep/Cyno25/internal/keys"
	"github.com/vnk23k-beep/Cyno25/internal/models"
	"github.com/vnk23k-beep/Cyno25/internal/schedule"
	"github.com/vnk23k-beep/Cyno25/internal/services"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

type handler struct {
	cfg config.Config
	cat *catalog.Catalog
	st  *store.Store
}

func New(cfg config.Config, cat *catalog.Catalog, st *store.Store) *http.Server {
	h := &handler{cfg: cfg, cat: cat, st: st}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/login", h.login)
	mux.HandleFunc("/api/events", h.events)
	mux.HandleFunc("/api/events/timeline", h.timeline)
	mux.HandleFunc("/api/events/categories", h.eventCategories)
	mux.HandleFunc("/api/participants", h.participants)
	mux.HandleFunc("/api/participants/search", h.searchParticipants)
	mux.HandleFunc("/api/categories", h.categories)
	mux.HandleFunc("/api/drafts", h.drafts)
	mux.HandleFunc("/api/messages", h.sendMessage)
	mux.HandleFunc("/api/messages/thread", h.thread)
	mux.HandleFunc("/api/messages/feed", h.feed)
	mux.HandleFunc("/api/presence", h.presence)
	mux.HandleFunc("/api/completions", h.complete)
	mux.HandleFunc("/api/export/master.csv", h.exportMasterCSV)
	mux.HandleFunc("/api/export/store.json", h.exportStoreJSON)
	mux.HandleFunc("/api/export/event.ics", h.exportEventICS)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: corsMiddleware.Handler(mux),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// eventView is one event plus its derived schedule and category state.
type eventView struct {
	catalog.Event
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Status     string   `json:"status"`
	Categories []string `json:"categories"`
}

func (h *handler) eventView(ev catalog.Event) (eventView, error) {
	start, end := schedule.Resolve(ev)
	cats, err := services.MergedCategories(h.st, ev)
	if err != nil {
		return eventView{}, err
	}
	v := eventView{Event: ev, Status: schedule.Status(time.Now(), start, end), Categories: cats}
	if start != nil {
		v.Start = start.Format(time.RFC3339)
	}
	if end != nil {
		v.End = end.Format(time.RFC3339)
	}
	return v, nil
}

type loginRequest struct {
	Mode     string `json:"mode"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	switch req.Mode {
	case models.RoleAdmin:
		if req.Password != h.cfg.AdminPassword {
			http.Error(w, "incorrect password", http.StatusForbidden)
			return
		}
		if err := services.TouchSession(h.st, name, models.RoleAdmin, req.Phone); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"role": models.RoleAdmin, "name": name})

	case models.RoleParticipant, "":
		exists, err := services.ParticipantExists(h.st, name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !exists {
			http.Error(w, "name not found, ask an admin to add you to an event first", http.StatusNotFound)
			return
		}
		if err := services.TouchSession(h.st, name, models.RoleParticipant, req.Phone); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp := map[string]string{"role": models.RoleParticipant, "name": name}
		if ev, start, end, ok, err := services.SoonestEvent(h.st, h.cat, name); err == nil && ok {
			resp["next_event"] = ev.Name
			resp["next_status"] = schedule.Status(time.Now(), start, end)
		}
		writeJSON(w, resp)

	default:
		http.Error(w, "unknown login mode", http.StatusBadRequest)
	}
}

func (h *handler) events(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	found := h.cat.Search(q.Get("q"), q.Get("category"), q.Get("day"))
	views := []eventView{}
	for _, ev := range found {
		v, err := h.eventView(ev)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		views = append(views, v)
	}
	writeJSON(w, views)
}

type timelineRow struct {
	Event   string `json:"event"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Venue   string `json:"venue"`
	Teacher string `json:"teacher"`
	Status  string `json:"status"`
}

func (h *handler) timeline(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	rows := []timelineRow{}
	for _, ev := range h.cat.Events() {
		start, end := schedule.Resolve(ev)
		row := timelineRow{
			Event:   ev.Name,
			Venue:   ev.Venue,
			Teacher: ev.TeacherInCharge,
			Status:  schedule.Status(now, start, end),
		}
		if start != nil {
			row.Start = start.Format(time.RFC3339)
		}
		if end != nil {
			row.End = end.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Start != rows[j].Start {
			return rows[i].Start < rows[j].Start
		}
		return rows[i].Event < rows[j].Event
	})
	writeJSON(w, rows)
}

func (h *handler) eventCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cat.Categories())
}

type participantRequest struct {
	Event    string `json:"event"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Grade    string `json:"grade"`
	Division string `json:"division"`
	Subcat   string `json:"subcat"`
}

func (h *handler) participants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		rows, err := services.ListParticipants(h.st, q.Get("event"), q.Get("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)

	case http.MethodPost:
		var req participantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Event) == "" {
			http.Error(w, "event required", http.StatusBadRequest)
			return
		}
		fields := models.DraftFields{
			Name: req.Name, Phone: req.Phone, Email: req.Email,
			Grade: req.Grade, Division: req.Division,
		}
		// The draft is written on both paths so switching categories never
		// loses operator input; only a non-empty name creates a record.
		if err := services.SaveDraft(h.st, keys.EventKey(req.Event), req.Subcat, fields); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeJSON(w, map[string]string{"status": "draft"})
			return
		}
		err := services.UpsertParticipant(h.st, req.Event, req.Name, req.Phone, req.Email, req.Grade, req.Division, req.Subcat)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "saved"})

	case http.MethodDelete:
		q := r.URL.Query()
		if err := services.RemoveParticipant(h.st, q.Get("event"), q.Get("name"), q.Get("subcat")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "removed"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *handler) searchParticipants(w http.ResponseWriter, r *http.Request) {
	res, err := services.SearchParticipants(h.st, r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, res)
}

type categoriesRequest struct {
	Event string   `json:"event"`
	Items []string `json:"items"`
}

func (h *handler) categories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		event := r.URL.Query().Get("event")
		ev, ok := h.cat.ByKey(keys.EventKey(event))
		if !ok {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		admin, err := services.AdminCategories(h.st, ev.Key())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		merged, err := services.MergedCategories(h.st, ev)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string][]string{
			"brochure": brochure.Subcategories(ev.BrochureBlock),
			"admin":    admin,
			"merged":   merged,
		})

	case http.MethodPut:
		var req categoriesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := services.SetAdminCategories(h.st, keys.EventKey(req.Event), req.Items); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "saved"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type draftRequest struct {
	Event    string `json:"event"`
	Category string `json:"category"`
	models.DraftFields
}

func (h *handler) drafts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		fields, err := services.LoadDraft(h.st, keys.EventKey(q.Get("event")), q.Get("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, fields)

	case http.MethodPut:
		var req draftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := services.SaveDraft(h.st, keys.EventKey(req.Event), req.Category, req.DraftFields); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "saved"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type messageRequest struct {
	To     string            `json:"to"`
	From   string            `json:"from"`
	Event  string            `json:"event"`
	Text   string            `json:"text"`
	ToRole string            `json:"to_role"`
	Kind   string            `json:"kind"`
	Meta   map[string]string `json:"meta"`
}

func (h *handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err := services.SendMessage(h.st, req.To, req.From, req.Event, req.Text, req.ToRole, req.Kind, req.Meta)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "sent"})
}

func (h *handler) thread(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	msgs, err := services.Thread(h.st, keys.EventKey(q.Get("event")), keys.NameKey(q.Get("name")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, msgs)
}

func (h *handler) feed(w http.ResponseWriter, r *http.Request) {
	msgs, err := services.Feed(h.st, h.cfg.FeedLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, msgs)
}

func (h *handler) presence(w http.ResponseWriter, r *http.Request) {
	rows, err := services.Presence(h.st)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

type completionRequest struct {
	Event   string `json:"event"`
	Name    string `json:"name"`
	AtVenue bool   `json:"at_venue"`
}

func (h *handler) complete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req completionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	ev, ok := h.cat.ByKey(keys.EventKey(req.Event))
	if !ok {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	// Marking is only offered from event start until an hour past its end,
	// mirroring the participant control on the event card.
	start, end := schedule.Resolve(ev)
	now := time.Now()
	open := start != nil && !now.Before(*start) && (end == nil || !now.After(end.Add(time.Hour)))
	if !open {
		http.Error(w, "completion window closed", http.StatusConflict)
		return
	}
	if err := services.MarkCompleted(h.st, ev.Name, req.Name, req.AtVenue); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "completed"})
}

func (h *handler) exportMasterCSV(w http.ResponseWriter, r *http.Request) {
	data, err := export.MasterCSV(h.st, h.cat)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ADMIN_MASTER_PARTICIPANTS.csv"`)
	_, _ = w.Write(data)
}

func (h *handler) exportStoreJSON(w http.ResponseWriter, r *http.Request) {
	data, err := export.RawJSON(h.st)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="participants_store_export.json"`)
	_, _ = w.Write(data)
}

func (h *handler) exportEventICS(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.cat.ByKey(keys.EventKey(r.URL.Query().Get("event")))
	if !ok {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	start, end := schedule.Resolve(ev)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ev.Name+`.ics"`)
	_, _ = w.Write(export.EventICS(ev, start, end))
}
