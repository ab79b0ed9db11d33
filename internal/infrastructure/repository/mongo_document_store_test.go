package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestInsertedIDString(t *testing.T) {
	oid := bson.NewObjectID()
	assert.Equal(t, oid.Hex(), insertedIDString(oid))
	assert.Equal(t, "custom", insertedIDString("custom"))
	assert.Equal(t, "42", insertedIDString(int32(42)))
}
