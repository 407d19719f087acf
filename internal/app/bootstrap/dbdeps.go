// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/luctportal/internal/app/store/intents"
	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/app/system/tasks"
	"github.com/dalemusser/luctportal/internal/app/system/workers"
)

// DBDeps holds back-end dependencies. luctstore fills the Mongo fields;
// luctportal fills the rest.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Store    *storeclient.Client
	Redis    *redis.Client // nil when redis_addr is blank
	Intents  intents.Store
	Workflow *submission.Workflow
	Queue    *tasks.Queue // nil when redis_addr is blank

	// background is shared by pointer so Shutdown sees what Startup began.
	background *background
}

type background struct {
	resume *workers.ResumeServer
	sweep  *workers.Runner
}
