package lead

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/primeweb/site/internal/platform/validate"
	"github.com/primeweb/site/internal/service/relay"
)

var positions = []string{"Desarrollador Frontend", "Diseñador UI/UX", "Especialista en Marketing Digital"}

func newTestService() (*Service, *relay.MockSubmitter) {
	sub := relay.NewMockSubmitter()
	s := NewService(sub, positions, WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}))
	return s, sub
}

func issueFields(t *testing.T, err error) []string {
	t.Helper()
	var v *validate.Errors
	if !errors.As(err, &v) {
		t.Fatalf("expected *validate.Errors, got %v", err)
	}
	fields := make([]string, len(v.Issues))
	for i, is := range v.Issues {
		fields[i] = is.Field
	}
	return fields
}

func TestSubmitContact(t *testing.T) {
	s, sub := newTestService()
	rc, err := s.SubmitContact(context.Background(), Contact{
		Name:    " Ana ",
		Email:   "ana@x.com",
		Message: "Quiero una web nueva para mi clínica",
	})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	if rc.SubmissionID == "" || rc.Source != relay.SourceContact {
		t.Fatalf("unexpected receipt %+v", rc)
	}

	subs := sub.Submissions()
	if len(subs) != 1 {
		t.Fatalf("expected one submission, got %d", len(subs))
	}
	if subs[0].Fields["name"] != "Ana" || subs[0].Fields["phone"] != "" {
		t.Fatalf("unexpected fields %+v", subs[0].Fields)
	}
	if subs[0].SubmissionID != rc.SubmissionID {
		t.Fatal("receipt and submission ids differ")
	}
}

func TestSubmitContactValidation(t *testing.T) {
	s, sub := newTestService()
	_, err := s.SubmitContact(context.Background(), Contact{Name: "A", Email: "nope", Message: "corto"})
	if !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	got := issueFields(t, err)
	want := []string{"name", "email", "message"}
	if len(got) != len(want) {
		t.Fatalf("expected issues for %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected issues for %v, got %v", want, got)
		}
	}
	if len(sub.Submissions()) != 0 {
		t.Fatal("invalid forms must not reach the relay")
	}
}

func TestSubmitContactRelayFailure(t *testing.T) {
	s, sub := newTestService()
	sub.FailNext(1, http.StatusBadGateway)
	_, err := s.SubmitContact(context.Background(), Contact{Name: "Ana", Email: "ana@x.com", Message: "Necesito una web"})
	if !errors.Is(err, relay.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestSubmitApplication(t *testing.T) {
	s, sub := newTestService()
	app := Application{
		Nombre:  "Luis",
		Email:   "luis@x.com",
		Mensaje: "Me encantaría colaborar",
		Puesto:  "Diseñador UI/UX",
	}
	if _, err := s.SubmitApplication(context.Background(), app); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	app.Puesto = OtherPosition
	if _, err := s.SubmitApplication(context.Background(), app); err != nil {
		t.Fatalf("SubmitApplication with Otro: %v", err)
	}
	subs := sub.Submissions()
	if len(subs) != 2 || subs[0].Source != relay.SourceApplication {
		t.Fatalf("unexpected submissions %+v", subs)
	}
}

func TestSubmitApplicationValidation(t *testing.T) {
	s, _ := newTestService()
	_, err := s.SubmitApplication(context.Background(), Application{
		Nombre: "Luis",
		Email:  "luis@x.com",
		Puesto: "Astronauta",
	})
	got := issueFields(t, err)
	if len(got) != 2 || got[0] != "mensaje" || got[1] != "puesto" {
		t.Fatalf("unexpected issues %v", got)
	}
}

func TestLiveChat(t *testing.T) {
	s, sub := newTestService()
	reply, err := s.LiveChat(context.Background(), "¿Cuánto cuesta una web profesional?")
	if err != nil {
		t.Fatalf("LiveChat: %v", err)
	}
	if reply.Reply != ReplyPricing || !reply.Delivered {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if subs := sub.Submissions(); len(subs) != 1 || subs[0].Source != relay.SourceLiveChat {
		t.Fatalf("unexpected submissions %+v", subs)
	}
}

func TestLiveChatRelayFailureStillReplies(t *testing.T) {
	s, sub := newTestService()
	sub.SetErr(errors.New("boom"))
	reply, err := s.LiveChat(context.Background(), "Quiero agendar una llamada gratuita")
	if err != nil {
		t.Fatalf("LiveChat: %v", err)
	}
	if reply.Delivered || reply.Reply != ReplyCall {
		t.Fatalf("unexpected reply %+v", reply)
	}
}

func TestLiveChatRejectsBlank(t *testing.T) {
	s, _ := newTestService()
	if _, err := s.LiveChat(context.Background(), "   "); !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestRespond(t *testing.T) {
	cases := map[string]string{
		"Hola, quiero información sobre sus servicios": ReplyServices,
		"Me interesa crear una página web":             ReplyDefault,
		"¿Cuánto cuesta una web profesional?":          ReplyPricing,
		"Quiero agendar una llamada gratuita":          ReplyCall,
		"PRECIO?":                                      ReplyPricing,
		"necesito una cita":                            ReplyCall,
	}
	for in, want := range cases {
		if got := Respond(in); got != want {
			t.Errorf("Respond(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQuickMessagesAreCopies(t *testing.T) {
	q := QuickMessages()
	if len(q) != 4 {
		t.Fatalf("expected 4 quick messages, got %d", len(q))
	}
	q[0] = "changed"
	if QuickMessages()[0] == "changed" {
		t.Fatal("QuickMessages must return a copy")
	}
}
