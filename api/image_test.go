package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/community-aid/auth"
	"github.com/bitmark-inc/community-aid/external/imagestore"
)

func multipartImage(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}

func (ts *testServer) upload(body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/donations/images", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func TestUploadDonationImage(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.images.EXPECT().
		Upload(gomock.Any(), "jacket.jpg", "image/jpeg", gomock.Any(), int64(4)).
		Return("http://127.0.0.1:9000/donations/donations/abc.jpg", nil).
		Times(1)

	body, contentType := multipartImage(t, "jacket.jpg", "image/jpeg", []byte{0xff, 0xd8, 0xff, 0xe0})
	w := ts.upload(body, contentType)
	assert.Equal(t, http.StatusCreated, w.Code, "wrong status code")

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, "http://127.0.0.1:9000/donations/donations/abc.jpg", resp["imageUrl"])
}

func TestUploadDonationImageNotAnImage(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.images.EXPECT().
		Upload(gomock.Any(), "notes.txt", "text/plain", gomock.Any(), gomock.Any()).
		Return("", imagestore.ErrNotImage).
		Times(1)

	body, contentType := multipartImage(t, "notes.txt", "text/plain", []byte("hello"))
	w := ts.upload(body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
	assert.Equal(t, errorInvalidImage, decodeError(t, w))
}

func TestUploadDonationImageWithoutStorage(t *testing.T) {
	directory, err := auth.NewDemoDirectory()
	assert.NoError(t, err)

	s := NewServer(nil, directory, auth.NewTokenIssuer("test-secret", time.Hour), nil, nil)
	ts := &testServer{Server: s, router: s.setupRouter()}

	body, contentType := multipartImage(t, "jacket.jpg", "image/jpeg", []byte{0xff, 0xd8})
	w := ts.upload(body, contentType)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")
}
