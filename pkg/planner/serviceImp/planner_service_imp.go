package serviceImp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"musafir/entities"
	"musafir/pkg/ai"
	"musafir/pkg/extract"
	"musafir/pkg/geocode"
	"musafir/pkg/ingest"
	"musafir/pkg/itinerary/types"
	"musafir/pkg/place"
	placerepo "musafir/pkg/place/repository"
	"musafir/pkg/planner"
	svc "musafir/pkg/planner/service"
	"musafir/pkg/render"
	"musafir/pkg/session"
	sessionrepo "musafir/pkg/session/repository"
	triprepo "musafir/pkg/trip/repository"
)

type Deps struct {
	LLM            ai.Client
	Model          string
	Sessions       sessionrepo.SessionRepository
	Places         placerepo.PlaceRepository
	Trips          triprepo.TripRepository
	Geocoder       geocode.Resolver
	GeocodeWorkers int
}

type PlannerSvc struct {
	llm       ai.Client
	model     string
	extractor *extract.Extractor
	sessions  sessionrepo.SessionRepository
	places    placerepo.PlaceRepository
	trips     triprepo.TripRepository
	geocoder  geocode.Resolver
	workers   int
}

var _ svc.PlannerService = (*PlannerSvc)(nil)

func NewPlannerService(d Deps) *PlannerSvc {
	if d.Geocoder == nil {
		d.Geocoder = geocode.Null()
	}
	if d.GeocodeWorkers < 1 {
		d.GeocodeWorkers = 1
	}
	return &PlannerSvc{
		llm:       d.LLM,
		model:     d.Model,
		extractor: extract.New(d.LLM, d.Model),
		sessions:  d.Sessions,
		places:    d.Places,
		trips:     d.Trips,
		geocoder:  d.Geocoder,
		workers:   d.GeocodeWorkers,
	}
}

func (s *PlannerSvc) StartSession(ctx context.Context, userID *uint) (*entities.PlanningSession, error) {
	return s.sessions.Create(ctx, userID)
}

func (s *PlannerSvc) Refine(ctx context.Context, sessionID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", planner.ErrEmptyInput
	}
	// the message counts toward the final plan even if the model is down
	if _, err := s.sessions.Append(ctx, sessionID, entities.EntrySourceMessage, text); err != nil {
		return "", err
	}
	return s.llm.Complete(ctx, s.model, extract.RefinePrompt(text))
}

func (s *PlannerSvc) Upload(ctx context.Context, sessionID string, in svc.UploadInput) (*svc.UploadResult, error) {
	if _, err := s.sessions.Find(ctx, sessionID); err != nil {
		return nil, err
	}
	doc, err := ingest.ExtractText(in.Filename, in.ContentType, in.Data)
	if err != nil {
		return nil, err
	}

	out := &svc.UploadResult{Title: doc.Title, Text: doc.Text}
	summary, err := s.llm.Complete(ctx, s.model, extract.UploadPrompt(in.Filename, doc.Text))
	if err != nil {
		log.WithError(err).WithField("file", in.Filename).Warn("upload summary failed, keeping raw text")
	} else {
		out.Text = summary
		out.Summarized = true
	}
	if _, err := s.sessions.Append(ctx, sessionID, entities.EntrySourceUpload, out.Text); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PlannerSvc) Finalize(ctx context.Context, req svc.FinalizeRequest) (*svc.FinalizeResult, error) {
	userID := req.UserID
	text := strings.TrimSpace(req.Text)
	if req.SessionID != "" {
		sess, err := s.sessions.Find(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		if sess.FinalTripID != nil {
			return nil, session.ErrSessionFinalized
		}
		if userID == nil {
			userID = sess.UserID
		}
		// one finalize per session; concurrent callers lose here
		if err := s.sessions.Claim(ctx, req.SessionID, entities.EntrySourceMessage, text); err != nil {
			return nil, err
		}
		claimed := true
		defer func() {
			if !claimed {
				return
			}
			if err := s.sessions.Release(context.WithoutCancel(ctx), req.SessionID); err != nil {
				log.WithError(err).WithField("session_id", req.SessionID).Warn("could not release session")
			}
		}()
		if text, err = s.sessions.Accumulated(ctx, req.SessionID); err != nil {
			return nil, err
		}
		res, err := s.finalize(ctx, req.SessionID, text, userID)
		if err == nil && res.TripID != nil {
			claimed = false
		}
		return res, err
	}
	return s.finalize(ctx, "", text, userID)
}

func (s *PlannerSvc) finalize(ctx context.Context, sessionID, text string, userID *uint) (*svc.FinalizeResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, planner.ErrEmptyInput
	}

	ex := s.extractor.Extract(ctx, text)
	res := &svc.FinalizeResult{Document: ex.Document, Warnings: ex.Structured.Warnings}
	if !ex.Structured.OK() {
		res.ParseError = ex.Structured.Err
		log.WithField("session_id", sessionID).Info("finalize produced no structured itinerary, nothing persisted")
		return res, nil
	}
	it := ex.Structured.Itinerary
	res.Itinerary = it

	stops := flatten(it)
	coords := s.geocodeAll(ctx, stops)

	placeIDs := make([]uint, len(stops))
	for i, st := range stops {
		id, err := s.ensurePlace(ctx, st, coords[i])
		if err != nil {
			log.WithError(err).WithField("place", st.activity.Place).Warn("place not persisted")
			continue
		}
		placeIDs[i] = id
	}

	t, err := s.createTrip(ctx, it, ex.Document, userID)
	if err != nil {
		return res, err
	}
	res.TripID = &t.TripID

	for i, st := range stops {
		if placeIDs[i] == 0 {
			res.ItemsFailed++
			continue
		}
		item := &entities.ItineraryItem{
			TripID:    t.TripID,
			PlaceID:   placeIDs[i],
			Day:       st.day,
			StartTime: st.start,
			EndTime:   st.end,
		}
		if err := s.trips.AddItem(ctx, item, nil); err != nil {
			log.WithError(err).WithFields(log.Fields{"trip_id": t.TripID, "day": st.day}).Warn("itinerary item not persisted")
			res.ItemsFailed++
			continue
		}
		res.ItemsPersisted++
	}

	if strings.TrimSpace(res.Document) == "" {
		res.Document = s.fallbackDocument(ctx, t)
	}
	if sessionID != "" {
		if err := s.sessions.MarkFinalized(ctx, sessionID, t.TripID); err != nil {
			log.WithError(err).WithField("session_id", sessionID).Warn("could not mark session finalized")
		}
	}

	log.WithFields(log.Fields{
		"trip_id":   t.TripID,
		"persisted": res.ItemsPersisted,
		"failed":    res.ItemsFailed,
		"warnings":  len(res.Warnings),
	}).Info("itinerary finalized")
	return res, nil
}

// geocodeAll resolves every stop with at most s.workers lookups in flight.
// Results are index-aligned with stops; a miss is nil.
func (s *PlannerSvc) geocodeAll(ctx context.Context, stops []stop) []*geocode.Coordinates {
	out := make([]*geocode.Coordinates, len(stops))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range stops {
		g.Go(func() error {
			out[i] = s.geocoder.Resolve(ctx, stops[i].address)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *PlannerSvc) ensurePlace(ctx context.Context, st stop, c *geocode.Coordinates) (uint, error) {
	in := place.Input{
		Name:        st.activity.Place,
		Description: st.activity.Description,
		Address:     strings.TrimSpace(st.activity.Address),
		PlaceType:   strings.TrimSpace(st.activity.Category),
	}
	if c != nil {
		lat, lng := c.Lat, c.Lng
		in.Lat, in.Lng = &lat, &lng
	}
	id, err := s.places.EnsurePlace(ctx, in)
	if err != nil {
		return 0, err
	}
	for _, h := range st.activity.Highlights {
		if err := s.places.AddDetail(ctx, id, entities.DetailHighlight, h); err != nil {
			log.WithError(err).WithField("place_id", id).Warn("highlight not saved")
		}
	}
	return id, nil
}

func (s *PlannerSvc) createTrip(ctx context.Context, it *types.Itinerary, document string, userID *uint) (*entities.Trip, error) {
	raw, err := json.Marshal(it)
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}
	t := &entities.Trip{
		UserID:        userID,
		Title:         tripTitle(it.Trip.Destination),
		Destination:   strings.TrimSpace(it.Trip.Destination),
		StartDate:     normalizeDate(it.Trip.Dates.Start),
		EndDate:       normalizeDate(it.Trip.Dates.End),
		Status:        entities.TripStatusUpcoming,
		Document:      document,
		ItineraryJSON: datatypes.JSON(raw),
	}
	if err := s.trips.CreateTrip(ctx, t); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	return t, nil
}

// fallbackDocument renders what was stored when the model gave no usable
// display text, and keeps it on the trip.
func (s *PlannerSvc) fallbackDocument(ctx context.Context, t *entities.Trip) string {
	items, err := s.trips.Items(ctx, t.TripID)
	if err != nil {
		log.WithError(err).WithField("trip_id", t.TripID).Warn("fallback render failed")
		return ""
	}
	t.Document = render.Render(t, items)
	if err := s.trips.Update(ctx, t); err != nil {
		log.WithError(err).WithField("trip_id", t.TripID).Warn("fallback document not saved")
	}
	return t.Document
}
