// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sprinthub/sprinthub/internal/app/store/jsonfile"
)

// DBDeps holds the storage dependencies for the configured backend.
// Exactly one of the two sets is populated: the Mongo client/database
// pair, or the JSON-file DB.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	FileDB        *jsonfile.DB
}
