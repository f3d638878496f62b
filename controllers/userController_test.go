package controllers

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}
	if !isDuplicateKey(dup) {
		t.Error("unique-index violation not recognized")
	}
	if isDuplicateKey(errors.New("connection reset")) {
		t.Error("unrelated error classified as duplicate key")
	}
	if isDuplicateKey(nil) {
		t.Error("nil error classified as duplicate key")
	}
}
