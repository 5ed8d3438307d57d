package repository

import (
	"context"
	"errors"
	"sync"

	"excel-interviewer/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateQuestion is returned when seeding an ID that already exists.
var ErrDuplicateQuestion = errors.New("question already exists")

// QuestionFilter narrows question selection. Zero values match everything.
type QuestionFilter struct {
	Difficulty model.Difficulty
	Type       model.QuestionType
	Category   model.Category
}

// QuestionRepo is the catalog contract consumed by the orchestrator.
type QuestionRepo interface {
	// ByID returns the question or nil when unknown.
	ByID(ctx context.Context, id string) (*model.Question, error)

	// Random draws uniformly among active questions matching the filter,
	// excluding the given ids. Returns nil when nothing matches.
	Random(ctx context.Context, filter QuestionFilter, excludeIDs []string) (*model.Question, error)

	// RecordUsage folds one completed response into the question's running
	// statistics. Updates are serialized per question.
	RecordUsage(ctx context.Context, id string, score, responseTimeSec float64) error

	// Active returns all active questions matching the filter.
	Active(ctx context.Context, filter QuestionFilter) ([]*model.Question, error)

	// Insert adds a catalog entry (seeding and tests).
	Insert(ctx context.Context, q *model.Question) error
}

type mongoQuestionRepo struct {
	collection *mongo.Collection

	// Running-average updates are read-modify-write and non-commutative,
	// so they are serialized here rather than relying on the store.
	usageMu sync.Mutex
}

// NewMongoQuestionRepo creates a Mongo-backed question repository.
func NewMongoQuestionRepo(db *mongo.Database) QuestionRepo {
	return &mongoQuestionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *mongoQuestionRepo) ByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *mongoQuestionRepo) Random(ctx context.Context, filter QuestionFilter, excludeIDs []string) (*model.Question, error) {
	match := filterQuery(filter)
	if len(excludeIDs) > 0 {
		match["_id"] = bson.M{"$nin": excludeIDs}
	}

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sample", Value: bson.M{"size": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}
	return questions[0], nil
}

func (r *mongoQuestionRepo) RecordUsage(ctx context.Context, id string, score, responseTimeSec float64) error {
	r.usageMu.Lock()
	defer r.usageMu.Unlock()

	question, err := r.ByID(ctx, id)
	if err != nil {
		return err
	}
	if question == nil {
		return nil
	}

	question.Usage.Record(score, responseTimeSec)

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"usage": question.Usage}},
	)
	return err
}

func (r *mongoQuestionRepo) Active(ctx context.Context, filter QuestionFilter) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, filterQuery(filter), options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *mongoQuestionRepo) Insert(ctx context.Context, q *model.Question) error {
	_, err := r.collection.InsertOne(ctx, q)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateQuestion
	}
	return err
}

func filterQuery(filter QuestionFilter) bson.M {
	query := bson.M{"active": true}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	return query
}
