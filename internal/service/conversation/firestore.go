package conversation

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/primeweb/site/internal/service/wizard"
)

const conversationsCollection = "conversations"

type firestoreMessage struct {
	Role    string    `firestore:"role"`
	Kind    string    `firestore:"kind,omitempty"`
	Text    string    `firestore:"text"`
	Options []string  `firestore:"options,omitempty"`
	URL     string    `firestore:"url,omitempty"`
	At      time.Time `firestore:"at"`
}

// firestoreConversation maps to the Firestore document structure.
type firestoreConversation struct {
	State        string             `firestore:"state"`
	Language     string             `firestore:"language"`
	Record       map[string]string  `firestore:"record"`
	SubmissionID string             `firestore:"submission_id"`
	Attempts     int                `firestore:"attempts"`
	LastError    string             `firestore:"last_error"`
	WhatsAppURL  string             `firestore:"whatsapp_url"`
	FinalizedAt  time.Time          `firestore:"finalized_at"`
	Transcript   []firestoreMessage `firestore:"transcript"`
	Active       bool               `firestore:"active"`
	CreatedAt    time.Time          `firestore:"created_at"`
	UpdatedAt    time.Time          `firestore:"updated_at"`
}

func toFirestore(c *Conversation) firestoreConversation {
	w := c.Wizard
	fc := firestoreConversation{
		State:        string(w.State),
		Language:     w.Language,
		Record:       w.Record.Fields(),
		SubmissionID: w.SubmissionID,
		Attempts:     w.Attempts,
		LastError:    w.LastError,
		WhatsAppURL:  w.WhatsAppURL,
		FinalizedAt:  w.FinalizedAt,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, m := range c.Transcript {
		fc.Transcript = append(fc.Transcript, firestoreMessage(m))
	}
	return fc
}

func fromFirestore(id string, fc firestoreConversation) *Conversation {
	c := &Conversation{
		ID: id,
		Wizard: wizard.Wizard{
			State:        wizard.State(fc.State),
			Language:     fc.Language,
			Record:       wizard.RecordFromFields(fc.Record),
			SubmissionID: fc.SubmissionID,
			Attempts:     fc.Attempts,
			LastError:    fc.LastError,
			WhatsAppURL:  fc.WhatsAppURL,
			FinalizedAt:  fc.FinalizedAt,
		},
		Active:    fc.Active,
		CreatedAt: fc.CreatedAt,
		UpdatedAt: fc.UpdatedAt,
	}
	for _, m := range fc.Transcript {
		c.Transcript = append(c.Transcript, Message(m))
	}
	return c
}

// FirestoreStore implements Store on Firestore, one document per conversation.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Create writes a new document and fails if the id is taken.
func (s *FirestoreStore) Create(ctx context.Context, c *Conversation) error {
	_, err := s.client.Collection(conversationsCollection).Doc(c.ID).Create(ctx, toFirestore(c))
	if status.Code(err) == codes.AlreadyExists {
		return ErrAlreadyExists
	}
	return err
}

// Get retrieves a conversation by id.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*Conversation, error) {
	doc, err := s.client.Collection(conversationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fc firestoreConversation
	if err := doc.DataTo(&fc); err != nil {
		return nil, err
	}
	return fromFirestore(id, fc), nil
}

// Save replaces an existing document inside a transaction.
func (s *FirestoreStore) Save(ctx context.Context, c *Conversation) error {
	docRef := s.client.Collection(conversationsCollection).Doc(c.ID)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Set(docRef, toFirestore(c))
	})
}

// DeactivateIdle flags stale active documents. The query needs a composite
// index on (active, updated_at).
func (s *FirestoreStore) DeactivateIdle(ctx context.Context, cutoff time.Time) (int, error) {
	iter := s.client.Collection(conversationsCollection).
		Where("active", "==", true).
		Where("updated_at", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	changed := 0
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return changed, nil
		}
		if err != nil {
			return changed, err
		}
		if _, err := doc.Ref.Update(ctx, []firestore.Update{{Path: "active", Value: false}}); err != nil {
			return changed, err
		}
		changed++
	}
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
