package consent

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const consentCollection = "consents"

type firestoreRecord struct {
	Analytics bool      `firestore:"analytics"`
	Marketing bool      `firestore:"marketing"`
	Date      time.Time `firestore:"date"`
}

// FirestoreStore keeps one document per visitor. Writes overwrite.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, visitorID string) (*Record, error) {
	doc, err := s.client.Collection(consentCollection).Doc(visitorID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fr firestoreRecord
	if err := doc.DataTo(&fr); err != nil {
		return nil, err
	}
	r := Record(fr)
	return &r, nil
}

func (s *FirestoreStore) Put(ctx context.Context, visitorID string, r Record) error {
	_, err := s.client.Collection(consentCollection).Doc(visitorID).Set(ctx, firestoreRecord(r))
	return err
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
