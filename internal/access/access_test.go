package access_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/eventos/internal/access"
	"github.com/magabrotheeeer/eventos/internal/metrics"
	"github.com/magabrotheeeer/eventos/internal/models"
)

type recorderStub struct {
	got []access.Decision
}

func (r *recorderStub) Record(d access.Decision) { r.got = append(r.got, d) }

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name     string
		sess     *models.Session
		wantUID  string
		wantErr  error
		decision access.Decision
	}{
		{name: "nil session", sess: nil, wantErr: access.ErrNotAuthenticated, decision: access.Unauthorized},
		{name: "session without uid", sess: &models.Session{Email: "a@b.c"}, wantErr: access.ErrNotAuthenticated, decision: access.Unauthorized},
		{name: "authenticated", sess: &models.Session{UID: "u1"}, wantUID: "u1", decision: access.Authorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorderStub{}
			g := access.NewGuard(rec)

			uid, err := g.RequireSession(tt.sess)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantUID, uid)
			assert.Equal(t, []access.Decision{tt.decision}, rec.got)
		})
	}
}

func TestRequireOwnership(t *testing.T) {
	ev := &models.Event{ID: "e1", OwnerUID: "u1"}

	tests := []struct {
		name     string
		uid      string
		ev       *models.Event
		wantErr  error
		decision access.Decision
	}{
		{name: "owner", uid: "u1", ev: ev, decision: access.Permitted},
		{name: "other user", uid: "u2", ev: ev, wantErr: access.ErrForbidden, decision: access.Denied},
		{name: "empty uid never matches", uid: "", ev: &models.Event{ID: "e2"}, wantErr: access.ErrForbidden, decision: access.Denied},
		{name: "nil event", uid: "u1", ev: nil, wantErr: access.ErrForbidden, decision: access.Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorderStub{}
			g := access.NewGuard(rec)

			err := g.RequireOwnership(tt.uid, tt.ev)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []access.Decision{tt.decision}, rec.got)
		})
	}
}

func TestGuard_NilRecorder(t *testing.T) {
	g := access.NewGuard(nil)
	_, err := g.RequireSession(nil)
	assert.ErrorIs(t, err, access.ErrNotAuthenticated)
	assert.NoError(t, g.RequireOwnership("u1", &models.Event{OwnerUID: "u1"}))
}

func TestPrometheusRecorder(t *testing.T) {
	m := metrics.Noop()
	g := access.NewGuard(access.NewPrometheusRecorder(m.AccessDecisions))

	_, err := g.RequireSession(&models.Session{UID: "u1"})
	require.NoError(t, err)
	_ = g.RequireOwnership("u2", &models.Event{OwnerUID: "u1"})
	_ = g.RequireOwnership("u2", &models.Event{OwnerUID: "u1"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccessDecisions.WithLabelValues("authorized")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AccessDecisions.WithLabelValues("denied")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AccessDecisions.WithLabelValues("permitted")))
}
