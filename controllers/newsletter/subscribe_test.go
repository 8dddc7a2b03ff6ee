package newsletterControllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/mail"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/glamourcosmetics/storefront-api/testutil"
)

func TestSubscribe(t *testing.T) {
	db := testutil.NewDB(t)
	rec := &mail.Recorder{}
	r := gin.New()
	r.POST("/subscribe", Subscribe(db, rec))

	for i := 0; i < 2; i++ {
		w := testutil.Do(r, http.MethodPost, "/subscribe", map[string]string{"email": "fan@example.com"}, "")
		if w.Code != http.StatusCreated {
			t.Fatalf("subscribe #%d = %d %s", i+1, w.Code, w.Body)
		}
	}

	var n int64
	db.Model(&models.Subscriber{}).Count(&n)
	if n != 1 {
		t.Errorf("subscribers = %d, want 1", n)
	}
	if sent := rec.Sent(); len(sent) != 2 || sent[0].To != "fan@example.com" {
		t.Errorf("sent = %+v", sent)
	}

	for _, email := range []string{"", "not-an-email", "a@b"} {
		w := testutil.Do(r, http.MethodPost, "/subscribe", map[string]string{"email": email}, "")
		if w.Code != http.StatusBadRequest || testutil.ErrorOf(t, w) != "Valid email is required" {
			t.Errorf("%q = %d %s", email, w.Code, w.Body)
		}
	}
}

func TestSubscribeSurvivesMailFailure(t *testing.T) {
	db := testutil.NewDB(t)
	r := gin.New()
	r.POST("/subscribe", Subscribe(db, &mail.Recorder{Err: errors.New("smtp down")}))

	w := testutil.Do(r, http.MethodPost, "/subscribe", map[string]string{"email": "fan@example.com"}, "")
	if w.Code != http.StatusCreated {
		t.Errorf("= %d %s, want 201", w.Code, w.Body)
	}
}
