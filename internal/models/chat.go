package models

type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerModel Speaker = "model"
)

// Track names one of the two parallel transcripts.
type Track string

const (
	TrackDefault Track = "default"
	TrackSteered Track = "steered"
)

func (t Track) Valid() bool {
	return t == TrackDefault || t == TrackSteered
}

type ChatTurn struct {
	Speaker Speaker
	Text    string
}
