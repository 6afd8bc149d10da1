package device

const audioPlayerVersion = "2.5.2-thunderball"

// AudioPlayer is the music centre: a power flag and the selected song.
// It starts off with no song.
type AudioPlayer struct {
	on   bool
	song string
}

// NewAudioPlayer creates an audio player that is off with no song selected.
func NewAudioPlayer() *AudioPlayer {
	return &AudioPlayer{}
}

// SetSong selects the song to play. An empty title clears the selection.
func (a *AudioPlayer) SetSong(title string) { a.song = title }

// TurnOn powers the player.
func (a *AudioPlayer) TurnOn() { a.on = true }

// TurnOff cuts power to the player.
func (a *AudioPlayer) TurnOff() { a.on = false }

// IsOn reports whether the player is powered.
func (a *AudioPlayer) IsOn() bool { return a.on }

// Song returns the selected song title, possibly empty.
func (a *AudioPlayer) Song() string { return a.song }

// Play starts the selected song.
//
// Power is checked before the song: an unpowered player reports "off"
// whether or not a song is selected.
func (a *AudioPlayer) Play() Report {
	switch {
	case !a.on:
		return notReady("off")
	case a.song == "":
		return notReady("no song selected")
	default:
		return ok("playing " + a.song)
	}
}

// Kind implements Device.
func (a *AudioPlayer) Kind() Kind { return KindAudioPlayer }

// State implements Device.
func (a *AudioPlayer) State() State {
	return State{"on": a.on, "song": a.song}
}

// AcceptVersion implements Device.
func (a *AudioPlayer) AcceptVersion(v *VersionVisitor) {
	v.report(Version{Device: "Music center", Tag: audioPlayerVersion})
}

// AcceptOperations implements Device.
func (a *AudioPlayer) AcceptOperations(v *OperationsVisitor) {
	v.report("setSong(title)", "turnOn()", "turnOff()", "play()")
}
