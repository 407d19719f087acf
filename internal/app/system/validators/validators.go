// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

// EnsureAll creates every portal collection (if missing) and attaches a
// JSON-Schema validator where one is defined. Servers that do not support
// collMod validators are logged and skipped.
//
// Schemas only pin what joins and workflows depend on: the id, the
// reference fields, and enumerations. Everything else stays free-form.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure(models.CollUsers, usersSchema())
	ensure(models.CollCourses, coursesSchema())
	ensure(models.CollClasses, classesSchema())
	ensure(models.CollEnrollments, enrollmentsSchema())
	ensure(models.CollReports, reportsSchema())
	ensure(models.CollAttendance, attendanceSchema())
	ensure(models.CollRatings, ratingsSchema())

	// Id sequences; no validator.
	ensure("counters", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

// setValidator uses "moderate" so records written before a schema change
// can still be patched.
func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 48 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 59 {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 115 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

// ref matches an id or a reference to one: numeric ids from the counter,
// or client-supplied strings.
var ref = bson.M{"bsonType": bson.A{"number", "string"}}

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func object(required bson.A, props bson.M) bson.M {
	props["id"] = ref
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   append(bson.A{"id"}, required...),
			"properties": props,
		},
	}
}

func usersSchema() bson.M {
	roles := bson.A{}
	for _, r := range models.AllRoles {
		roles = append(roles, string(r.Value))
	}
	return object(bson.A{"name", "email", "role"}, bson.M{
		"name":  nonBlank,
		"email": nonBlank,
		"role":  bson.M{"enum": roles},
	})
}

func coursesSchema() bson.M {
	return object(bson.A{"name", "code"}, bson.M{
		"name":         nonBlank,
		"code":         nonBlank,
		"faculty_name": bson.M{"bsonType": "string"},
		"lecturerId":   bson.M{"bsonType": bson.A{"number", "string", "null"}},
	})
}

func classesSchema() bson.M {
	return object(bson.A{"name", "courseId"}, bson.M{
		"name":       nonBlank,
		"courseId":   ref,
		"lecturerId": bson.M{"bsonType": bson.A{"number", "string", "null"}},
	})
}

func enrollmentsSchema() bson.M {
	return object(bson.A{"userId", "courseId"}, bson.M{
		"userId":   ref,
		"courseId": ref,
	})
}

func reportsSchema() bson.M {
	return object(bson.A{"lecturerId", "courseId", "date", "topic"}, bson.M{
		"lecturerId": ref,
		"courseId":   ref,
		"date":       nonBlank,
		"topic":      nonBlank,
		"present":    bson.M{"bsonType": "number", "minimum": 0},
		"total":      bson.M{"bsonType": "number", "minimum": 0},
	})
}

func attendanceSchema() bson.M {
	return object(bson.A{"reportId", "studentId", "status"}, bson.M{
		"reportId":  ref,
		"studentId": ref,
		"courseId":  ref,
		"status":    bson.M{"enum": bson.A{models.AttendanceStatusPresent}},
	})
}

func ratingsSchema() bson.M {
	return object(bson.A{"lecturerId", "userId", "rating"}, bson.M{
		"lecturerId": ref,
		"userId":     ref,
		"rating":     bson.M{"bsonType": "number", "minimum": 1, "maximum": 5},
	})
}
