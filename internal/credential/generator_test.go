package credential

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

type fakeRenderer struct {
	lastDoc Document
	err     error
}

func (r *fakeRenderer) Render(doc Document) ([]byte, error) {
	r.lastDoc = doc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeEncoder struct {
	lastContent string
	err         error
}

func (e *fakeEncoder) Encode(content string, size int) ([]byte, error) {
	e.lastContent = content
	if e.err != nil {
		return nil, e.err
	}
	return []byte("png"), nil
}

type fakeStorage struct {
	names []string
	err   error
}

func (s *fakeStorage) Put(ctx context.Context, name string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.names = append(s.names, name)
	return "/documents/" + name, nil
}

type fakeSigner struct{ err error }

func (s *fakeSigner) Sign(ticketID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "tok-" + ticketID, nil
}

func testApplication() *domain.Application {
	return &domain.Application{
		TicketID: "HT123456",
		Name:     "A",
		Email:    "a@x.com",
		Phone:    "123",
		College:  "X",
		Course:   "CS",
	}
}

func TestGenerateProducesDocumentURL(t *testing.T) {
	renderer := &fakeRenderer{}
	encoder := &fakeEncoder{}
	storage := &fakeStorage{}
	gen := NewGenerator(renderer, encoder, storage, &fakeSigner{}, "http://localhost:8080")

	url, err := gen.Generate(context.Background(), testApplication())
	require.NoError(t, err)
	assert.Equal(t, "/documents/HT123456.pdf", url)
	assert.Equal(t, []string{"HT123456.pdf"}, storage.names)

	// the QR embeds the verification URL with a signed token
	assert.True(t, strings.HasPrefix(encoder.lastContent, "http://localhost:8080/verify-ticket/HT123456?token="))
	assert.Contains(t, encoder.lastContent, "tok-HT123456")

	assert.Equal(t, "HT123456", renderer.lastDoc.TicketID)
	assert.Equal(t, []byte("png"), renderer.lastDoc.QRPNG)
}

func TestGeneratePropagatesCollaboratorFailures(t *testing.T) {
	app := testApplication()
	ctx := context.Background()

	gen := NewGenerator(&fakeRenderer{}, &fakeEncoder{}, &fakeStorage{}, &fakeSigner{err: errors.New("sign")}, "http://x")
	_, err := gen.Generate(ctx, app)
	assert.Error(t, err)

	gen = NewGenerator(&fakeRenderer{}, &fakeEncoder{err: errors.New("qr")}, &fakeStorage{}, &fakeSigner{}, "http://x")
	_, err = gen.Generate(ctx, app)
	assert.Error(t, err)

	gen = NewGenerator(&fakeRenderer{err: errors.New("render")}, &fakeEncoder{}, &fakeStorage{}, &fakeSigner{}, "http://x")
	_, err = gen.Generate(ctx, app)
	assert.Error(t, err)

	storage := &fakeStorage{err: errors.New("disk full")}
	gen = NewGenerator(&fakeRenderer{}, &fakeEncoder{}, storage, &fakeSigner{}, "http://x")
	_, err = gen.Generate(ctx, app)
	assert.Error(t, err)
	assert.Empty(t, storage.names)
}

func TestPDFRendererProducesPDFBytes(t *testing.T) {
	encoder := NewQREncoder()
	qrPNG, err := encoder.Encode("http://localhost:8080/verify-ticket/HT123456", 200)
	require.NoError(t, err)
	require.NotEmpty(t, qrPNG)

	renderer := NewPDFRenderer("Documount Scholarship Program", "Sponsored by Documount Technologies Pvt Ltd")
	out, err := renderer.Render(Document{
		TicketID: "HT123456",
		Name:     "A",
		Email:    "a@x.com",
		Phone:    "123",
		College:  "X",
		Course:   "CS",
		QRPNG:    qrPNG,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestDiskStorageWritesUnderTicketDerivedPath(t *testing.T) {
	dir := t.TempDir()
	storage := NewDiskStorage(dir, "/documents")

	url, err := storage.Put(context.Background(), "HT123456.pdf", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/documents/HT123456.pdf", url)
}
