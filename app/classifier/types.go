package classifier

import "context"

// SentimentResult is a single polarity prediction.
type SentimentResult struct {
	Label string
	Score float64
}

// TopicScore is one entry in a ranked topic classification.
type TopicScore struct {
	Label string
	Score float64
}

// SentimentClassifier predicts polarity for a single text.
type SentimentClassifier interface {
	ClassifySentiment(ctx context.Context, text string) (SentimentResult, error)
}

// TopicClassifier ranks candidate labels for a text via zero-shot
// classification. The returned list covers all input labels, best first.
type TopicClassifier interface {
	ClassifyTopic(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]TopicScore, error)
}
