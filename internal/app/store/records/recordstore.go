// internal/app/store/records/recordstore.go
package recordstore

import (
	"context"
	"crypto/subtle"
	"net/url"
	"sort"
	"strings"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	counterstore "github.com/dalemusser/luctportal/internal/app/store/counters"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Store serves the portal's collections out of MongoDB. Every collection
// holds free-form JSON records keyed by an "id" field; Mongo's own _id
// never leaves the store.
type Store struct {
	db  *mongo.Database
	ids *counterstore.Store
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{db: db, ids: counterstore.New(db), log: logger}
}

func (s *Store) coll(name string) (*mongo.Collection, error) {
	if !models.IsCollection(name) {
		return nil, ErrUnknownCollection
	}
	return s.db.Collection(name), nil
}

// List returns every record in insertion order whose fields equal the
// query values. A key given several times matches any of its values.
func (s *Store) List(ctx context.Context, collection string, query url.Values) ([]Record, error) {
	c, err := s.coll(collection)
	if err != nil {
		return nil, err
	}
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}

	cur, err := c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Record{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, toJSON(doc))
	}
	return out, cur.Err()
}

func buildFilter(query url.Values) (bson.M, error) {
	filter := bson.M{}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, "password") {
			return nil, ErrForbiddenFilter
		}
		if k == "" || strings.HasPrefix(k, "$") || strings.HasPrefix(k, "_") {
			continue
		}
		var alts bson.A
		for _, v := range query[k] {
			alts = append(alts, matchValue(v)...)
		}
		filter[k] = bson.M{"$in": alts}
	}
	return filter, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, collection, id string) (Record, error) {
	c, err := s.coll(collection)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	err = c.FindOne(ctx, bson.M{"id": matchID(id)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toJSON(doc), nil
}

// Create inserts rec. A missing id is assigned from the collection's
// sequence; a client-supplied numeric id advances the sequence past it.
func (s *Store) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	c, err := s.coll(collection)
	if err != nil {
		return nil, err
	}
	normalizeRefs(rec)

	if collection == models.CollUsers {
		if err := prepareUser(rec); err != nil {
			return nil, err
		}
	}

	switch id := rec["id"].(type) {
	case nil:
		n, err := s.ids.Next(ctx, collection)
		if err != nil {
			return nil, err
		}
		rec["id"] = n
	case int64:
		if err := s.ids.Observe(ctx, collection, id); err != nil {
			return nil, err
		}
	case string:
		if strings.TrimSpace(id) == "" {
			return nil, invalid("id must not be blank")
		}
	default:
		return nil, invalid("id must be a number or a string")
	}

	if _, err := c.InsertOne(ctx, bson.M(rec)); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicate
		}
		if isSchemaViolation(err) {
			return nil, invalid("record does not match the " + collection + " schema")
		}
		return nil, err
	}
	delete(rec, "password")
	return rec, nil
}

// Patch merges fields into the record with the given id and returns the
// result. The id itself cannot be changed.
func (s *Store) Patch(ctx context.Context, collection, id string, fields Record) (Record, error) {
	c, err := s.coll(collection)
	if err != nil {
		return nil, err
	}
	delete(fields, "id")
	delete(fields, "_id")
	normalizeRefs(fields)

	if pw, ok := fields["password"]; ok {
		hash, err := hashPassword(pw)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}
	if e, ok := fields["email"].(string); ok && collection == models.CollUsers {
		fields["email"] = normalizeEmail(e)
	}

	filter := bson.M{"id": matchID(id)}
	if len(fields) == 0 {
		return s.Get(ctx, collection, id)
	}

	var doc bson.M
	err = c.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": bson.M(fields)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicate
		}
		if isSchemaViolation(err) {
			return nil, invalid("record does not match the " + collection + " schema")
		}
		return nil, err
	}
	return toJSON(doc), nil
}

// Authenticate checks an email/password pair and returns the user without
// its password. Passwords stored before hashing was introduced are
// compared as-is once and then upgraded to a bcrypt hash.
func (s *Store) Authenticate(ctx context.Context, email, password string) (Record, error) {
	c := s.db.Collection(models.CollUsers)

	var doc bson.M
	err := c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	stored, _ := doc["password"].(string)
	switch {
	case stored == "":
		return nil, ErrInvalidCredentials
	case isBcrypt(stored):
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
	default:
		if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
			return nil, ErrInvalidCredentials
		}
		s.upgradePassword(ctx, c, doc["_id"], password)
	}
	return toJSON(doc), nil
}

func (s *Store) upgradePassword(ctx context.Context, c *mongo.Collection, oid any, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warn("password rehash failed", zap.Error(err))
		return
	}
	if _, err := c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"password": string(hash)}}); err != nil {
		s.log.Warn("password upgrade write failed", zap.Error(err))
		return
	}
	s.log.Info("upgraded plaintext password to bcrypt")
}

func prepareUser(rec Record) error {
	email, _ := rec["email"].(string)
	email = normalizeEmail(email)
	if email == "" {
		return invalid("email is required")
	}
	rec["email"] = email

	hash, err := hashPassword(rec["password"])
	if err != nil {
		return err
	}
	rec["password"] = hash
	return nil
}

func hashPassword(v any) (string, error) {
	pw, _ := v.(string)
	if pw == "" {
		return "", invalid("password is required")
	}
	if isBcrypt(pw) {
		return pw, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func isBcrypt(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Count returns the number of records in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	c, err := s.coll(collection)
	if err != nil {
		return 0, err
	}
	return c.CountDocuments(ctx, bson.M{})
}
