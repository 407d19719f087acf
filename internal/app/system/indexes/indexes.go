// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

// EnsureAll is called at startup by the store binary. Each ensure function
// is idempotent. Errors are aggregated so every problem is visible and
// startup can fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, name := range models.AllCollections {
		if err := ensureIndexSet(ctx, db.Collection(name), collectionIndexes(name)); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolOf(p *bool) bool { return p != nil && *p }

// Mongo/DocDB return IndexOptionsConflict when an index with the same keys
// already exists under a different name or with different options.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

// listIndexes maps key signature to the existing index.
func listIndexes(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

type desiredIndex struct {
	model  mongo.IndexModel
	name   string
	unique bool
	sig    string
}

func describe(m mongo.IndexModel) desiredIndex {
	d := desiredIndex{model: m, sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			d.name = *m.Options.Name
		}
		d.unique = boolOf(m.Options.Unique)
	}
	return d
}

// ensureIndexSet makes the collection's indexes match want. An index with
// the same keys is reused when its uniqueness matches, renamed when only
// the name differs, and dropped and recreated otherwise.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, want []mongo.IndexModel) error {
	var errs []string
	for _, m := range want {
		d := describe(m)
		if err := ensureIndex(ctx, coll, d); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureIndex(ctx context.Context, coll *mongo.Collection, d desiredIndex) error {
	start := time.Now()
	log := zap.L().With(
		zap.String("collection", coll.Name()),
		zap.String("name", d.name),
		zap.String("keys", d.sig),
		zap.Bool("unique", d.unique))

	ex, found := listIndexes(ctx, coll)[d.sig]
	if !found {
		_, err := coll.Indexes().CreateOne(ctx, d.model)
		if isOptionsConflictErr(err) {
			// Raced with another creator; reconcile against what is there now.
			if ex, found = listIndexes(ctx, coll)[d.sig]; found {
				return reconcile(ctx, coll, d, ex, log, start)
			}
		}
		if err != nil {
			log.Warn("index ensure failed", zap.Error(err))
			return createErr(coll, d, err)
		}
		log.Info("index ensured", zap.Duration("took", time.Since(start)))
		return nil
	}
	return reconcile(ctx, coll, d, ex, log, start)
}

func reconcile(ctx context.Context, coll *mongo.Collection, d desiredIndex, ex existingIndex, log *zap.Logger, start time.Time) error {
	if d.unique == boolOf(ex.Unique) && (d.name == "" || d.name == ex.Name) {
		log.Debug("reusing existing index", zap.Duration("took", time.Since(start)))
		return nil
	}

	log.Info("recreating index", zap.String("existing", ex.Name))
	if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
		return fmt.Errorf("drop %s failed: %w", ex.Name, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, d.model); err != nil {
		return createErr(coll, d, err)
	}
	log.Info("index recreated", zap.Duration("took", time.Since(start)))
	return nil
}

// createErr explains the common case of a unique index that cannot be
// built because duplicates are already stored.
func createErr(coll *mongo.Collection, d desiredIndex, err error) error {
	if !d.unique || !wafflemongo.IsDup(err) {
		return err
	}
	field := d.model.Keys.(bson.D)[0].Key
	return fmt.Errorf("cannot create unique index, duplicates present. Example finder:\n"+
		`db.%s.aggregate([{ $group: { _id: "$%s", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`,
		coll.Name(), field)
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

// uniqueID is shared by every collection: the API id is the record key.
func uniqueID(coll string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_" + coll + "_id"),
	}
}

func single(coll, field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName("idx_" + coll + "_" + field),
	}
}

func collectionIndexes(coll string) []mongo.IndexModel {
	set := []mongo.IndexModel{uniqueID(coll)}

	switch coll {
	case models.CollUsers:
		set = append(set,
			// Email identifies an account for the credential check.
			mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
			},
			// Lecturer pickers list users by role.
			single(coll, "role"),
		)
	case models.CollCourses:
		set = append(set, single(coll, "lecturerId"))
	case models.CollClasses:
		set = append(set, single(coll, "courseId"), single(coll, "lecturerId"))
	case models.CollEnrollments:
		set = append(set,
			// One enrollment per student per course. Two concurrent enroll
			// clicks both pass the portal's client-side check; this index
			// turns the second insert into a 409.
			mongo.IndexModel{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "courseId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_enrollments_user_course"),
			},
			single(coll, "courseId"),
		)
	case models.CollReports:
		set = append(set, single(coll, "lecturerId"), single(coll, "courseId"))
	case models.CollAttendance:
		set = append(set,
			single(coll, "reportId"),
			single(coll, "studentId"),
		)
	case models.CollRatings:
		set = append(set, single(coll, "lecturerId"), single(coll, "userId"))
	}
	return set
}
