package eventbus

type MockSubscriber struct {
	Subscribed bool
	MeetingID  string
	Bus        Feed
}

func NewMockSubscriber(bus Feed) *MockSubscriber {
	return &MockSubscriber{
		Bus: bus,
	}
}

func (s *MockSubscriber) Subscribe(meetingID string) (Feed, error) {
	s.Subscribed = true
	s.MeetingID = meetingID

	return s.Bus, nil
}

type MockBus struct {
	Messages chan []byte
	Closed   bool
}

func NewMockBus() *MockBus {
	return &MockBus{Messages: make(chan []byte)}
}

func (b *MockBus) Events() <-chan []byte {
	return b.Messages
}

func (b *MockBus) Close() error {
	b.Closed = true
	close(b.Messages)
	return nil
}
