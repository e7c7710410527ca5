package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func image(name string) *domain.Upload {
	return &domain.Upload{Filename: name, ContentType: "image/png", Content: strings.NewReader("png")}
}

func TestAnnouncements(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()

	older, err := f.news.CreateAnnouncement(ctx, NewsInput{Titulo: ptr("Asamblea"), Fecha: ptr("2025-05-01")})
	require.NoError(t, err)
	newer, err := f.news.CreateAnnouncement(ctx, NewsInput{Titulo: ptr("Regata"), Fecha: ptr("2025-06-01")})
	require.NoError(t, err)

	list, err := f.news.ListAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	_, err = f.news.CreateAnnouncement(ctx, NewsInput{Descripcion: ptr("sin título")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := f.news.UpdateAnnouncement(ctx, older.ID.String(), NewsInput{Descripcion: ptr("orden del día")})
	require.NoError(t, err)
	assert.Equal(t, "Asamblea", updated.Titulo)
	assert.Equal(t, "orden del día", updated.Descripcion)

	require.NoError(t, f.news.DeleteAnnouncement(ctx, older.ID.String()))
	assert.ErrorIs(t, f.news.DeleteAnnouncement(ctx, older.ID.String()), domain.ErrNotFound)
}

func TestEventImages(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()
	f.setClock(func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) })

	ev, err := f.events.CreateEvent(ctx, NewsInput{Titulo: ptr("Bautismo"), Imagen: image("Foto.PNG")})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ev.Imagen, "/uploads/event-"))
	assert.True(t, strings.HasSuffix(ev.Imagen, ".png"))

	f.setClock(func() time.Time { return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC) })
	updated, err := f.events.UpdateEvent(ctx, ev.ID.String(), NewsInput{Imagen: image("nueva.jpg")})
	require.NoError(t, err)
	assert.NotEqual(t, ev.Imagen, updated.Imagen)
	assert.Equal(t, []string{ev.Imagen}, f.files.removed)

	require.NoError(t, f.events.DeleteEvent(ctx, ev.ID.String()))
	assert.Equal(t, []string{ev.Imagen, updated.Imagen}, f.files.removed)
}

func TestEventImageRejected(t *testing.T) {
	f := newFixture(t, domain.PolicyAdvisory)
	ctx := context.Background()

	_, err := f.events.CreateEvent(ctx, NewsInput{
		Titulo: ptr("Bautismo"),
		Imagen: &domain.Upload{Filename: "a.txt", ContentType: "text/plain", Content: strings.NewReader("x")},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	f.files.err = errBoom
	_, err = f.events.CreateEvent(ctx, NewsInput{Titulo: ptr("Bautismo"), Imagen: image("a.png")})
	assert.ErrorIs(t, err, domain.ErrUpload)
	assert.Zero(t, f.countRows(t, &domain.Event{}))
}
