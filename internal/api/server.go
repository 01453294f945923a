package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vraelian/OrbitalTrading/internal/catalog"
	"github.com/vraelian/OrbitalTrading/internal/config"
	"github.com/vraelian/OrbitalTrading/internal/game"
	"github.com/vraelian/OrbitalTrading/internal/save"
)

// Server exposes one game session over HTTP. The session pointer is swapped
// on new-game and load, so handlers always read it under mu.
type Server struct {
	cfg   config.APIConfig
	log   *slog.Logger
	cat   *catalog.Catalog
	store *save.Store

	mu      sync.Mutex
	session *game.Session

	mux *chi.Mux
}

// New builds a server around an initial session. store may be nil, in which
// case the save endpoints report that persistence is disabled.
func New(cfg config.APIConfig, logger *slog.Logger, cat *catalog.Catalog, session *game.Session, store *save.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		log:     logger,
		cat:     cat,
		store:   store,
		session: session,
		mux:     chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/market", s.handleMarket)
		r.Get("/ledger", s.handleLedger)
		r.Get("/travel/options", s.handleTravelOptions)
		r.Get("/travel/event", s.handlePendingEvent)
		r.Get("/shipyard", s.handleShipyard)
		r.Get("/loans", s.handleLoanOffers)

		r.Post("/market/buy", s.handleBuy)
		r.Post("/market/sell", s.handleSell)
		r.Post("/travel", s.handleTravel)
		r.Post("/travel/resolve", s.handleResolveChoice)
		r.Post("/age/resolve", s.handleResolveAge)
		r.Post("/services/refuel", s.handleRefuel)
		r.Post("/services/repair", s.handleRepair)
		r.Post("/loans/take", s.handleTakeLoan)
		r.Post("/loans/pay", s.handlePayDebt)
		r.Post("/intel/buy", s.handleBuyIntel)
		r.Post("/ships/buy", s.handleBuyShip)
		r.Post("/ships/sell", s.handleSellShip)
		r.Post("/ships/activate", s.handleActivateShip)

		r.Post("/game/new", s.handleNewGame)
		r.Get("/saves", s.handleSaveList)
		r.Post("/saves", s.handleSaveGame)
		r.Post("/saves/{id}/load", s.handleLoadGame)
		r.Delete("/saves/{id}", s.handleDeleteSave)

		r.Post("/debug/advance", s.handleAdvanceDays)
	})
}

func (s *Server) current() *game.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	st, err := s.current().State()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleMarket(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"quotes": s.current().MarketQuotes()})
}

func (s *Server) handleLedger(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.current().LedgerEntries()})
}

func (s *Server) handleTravelOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"routes": s.current().TravelOptions()})
}

func (s *Server) handlePendingEvent(w http.ResponseWriter, _ *http.Request) {
	st, err := s.current().State()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var age *game.PendingChoice
	if len(st.PendingAge) > 0 {
		age = s.current().PendingAgeEvent()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pending_choice": st.PendingChoice,
		"pending_age":    age,
	})
}

func (s *Server) handleShipyard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ships": s.current().ShipyardListings()})
}

func (s *Server) handleLoanOffers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"offers": s.current().LoanOffers()})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CommodityID string `json:"commodity_id"`
		Quantity    int    `json:"quantity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notices, err := s.current().Buy(strings.TrimSpace(in.CommodityID), in.Quantity)
	s.respond(w, notices, err)
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CommodityID string `json:"commodity_id"`
		Quantity    int    `json:"quantity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notices, err := s.current().Sell(strings.TrimSpace(in.CommodityID), in.Quantity)
	s.respond(w, notices, err)
}

func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DestinationID string `json:"destination_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	force := r.URL.Query().Get("force_event") == "1"
	notices, err := s.current().TravelTo(strings.TrimSpace(in.DestinationID), force)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	st, stErr := s.current().State()
	if stErr != nil {
		writeError(w, http.StatusInternalServerError, stErr.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notices":        notices,
		"pending_choice": st.PendingChoice,
		"day":            st.Day,
		"location_id":    st.Player.LocationID,
	})
}

func (s *Server) handleResolveChoice(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Choice int `json:"choice"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := s.current()
	narrative, notices, err := sess.ResolveChoice(in.Choice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resumed, err := sess.ResumeTravel()
	if err != nil && !errors.Is(err, game.ErrGameOver) {
		writeDomainError(w, err)
		return
	}
	notices = append(notices, resumed...)
	writeJSON(w, http.StatusOK, map[string]any{
		"narrative": narrative,
		"notices":   notices,
	})
}

func (s *Server) handleResolveAge(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Choice int `json:"choice"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notices, err := s.current().ResolveAgeChoice(in.Choice)
	s.respond(w, notices, err)
}

func (s *Server) handleRefuel(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, nil, s.current().RefuelTick())
}

func (s *Server) handleRepair(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, nil, s.current().RepairTick())
}

func (s *Server) handleTakeLoan(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Offer int `json:"offer"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notices, err := s.current().TakeLoan(in.Offer)
	s.respond(w, notices, err)
}

func (s *Server) handlePayDebt(w http.ResponseWriter, _ *http.Request) {
	notices, err := s.current().PayDebt()
	s.respond(w, notices, err)
}

func (s *Server) handleBuyIntel(w http.ResponseWriter, _ *http.Request) {
	notices, err := s.current().BuyIntel()
	s.respond(w, notices, err)
}

func (s *Server) handleBuyShip(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ShipID string `json:"ship_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notices, err := s.current().BuyShip(strings.TrimSpace(in.ShipID))
	s.respond(w, notices, err)
}

func (s *Server) handleSellShip(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ShipID string `json:"ship_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notices, err := s.current().SellShip(strings.TrimSpace(in.ShipID))
	s.respond(w, notices, err)
}

func (s *Server) handleActivateShip(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ShipID string `json:"ship_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(w, nil, s.current().SetActiveShip(strings.TrimSpace(in.ShipID)))
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Seed int64 `json:"seed"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	seed := in.Seed
	if seed == 0 {
		seed = s.cfg.Seed
	}
	fresh := game.New(s.cat, s.log, seed)
	s.mu.Lock()
	s.session = fresh
	s.mu.Unlock()
	s.log.Info("new game started", "seed", seed)

	st, err := fresh.State()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleSaveList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}
	saves, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saves": saves})
}

func (s *Server) handleSaveGame(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}
	var in struct {
		Name string `json:"name"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	st, err := s.current().State()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	id, err := s.store.Save(r.Context(), in.Name, st)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleLoadGame(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid save id")
		return
	}
	st, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, save.ErrSaveNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.current().Restore(st); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("game loaded", "save_id", id, "day", st.Day)
	writeJSON(w, http.StatusOK, map[string]any{"day": st.Day, "location_id": st.Player.LocationID})
}

func (s *Server) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid save id")
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, save.ErrSaveNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAdvanceDays(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Days int `json:"days"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notices, err := s.current().AdvanceDays(in.Days)
	s.respond(w, notices, err)
}

// respond writes the standard mutation envelope: the notices produced plus a
// short status line clients poll for.
func (s *Server) respond(w http.ResponseWriter, notices []game.Notice, err error) {
	if err != nil {
		writeDomainError(w, err)
		return
	}
	st, stErr := s.current().State()
	if stErr != nil {
		writeError(w, http.StatusInternalServerError, stErr.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notices":   notices,
		"day":       st.Day,
		"credits":   st.Player.Credits,
		"debt":      st.Player.Debt,
		"game_over": st.GameOver,
	})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientFuel):
		writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, game.ErrUnknownCommodity),
		errors.Is(err, game.ErrUnknownLocation),
		errors.Is(err, game.ErrUnknownShip):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrInTransit),
		errors.Is(err, game.ErrAwaitingChoice),
		errors.Is(err, game.ErrNotTraveling),
		errors.Is(err, game.ErrNoPendingChoice),
		errors.Is(err, game.ErrIntelActive),
		errors.Is(err, game.ErrDebtOutstanding),
		errors.Is(err, game.ErrShipActive),
		errors.Is(err, game.ErrLastShip):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrLocationLocked),
		errors.Is(err, game.ErrTierLocked):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
