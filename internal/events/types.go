package events

// Event type constants for kelindar/event.
const (
	TypeSessionOpened uint32 = iota + 1
	TypeSessionClosed
	TypeCapsLoaded
	TypeAttributeQueried
	TypeResolutionChecked
	TypeDumpWritten
	TypeConfigReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// SessionOpenedEvent is published when a driver session finished initialization.
type SessionOpenedEvent struct {
	SessionID  string `json:"session_id" example:"2f1c8a0e-6b7d-4c1e-9a55-0c3f1f7f9e21" doc:"Session identifier"`
	Platform   string `json:"platform" example:"cannonlake" doc:"Hardware platform"`
	Generation string `json:"generation" example:"gen10" doc:"Capability generation"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SessionOpenedEvent.
func (e SessionOpenedEvent) Type() uint32 { return TypeSessionOpened }

// SessionClosedEvent is published when a driver session is closed.
type SessionClosedEvent struct {
	SessionID string `json:"session_id" doc:"Session identifier"`
	Platform  string `json:"platform" example:"cannonlake" doc:"Hardware platform"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SessionClosedEvent.
func (e SessionClosedEvent) Type() uint32 { return TypeSessionClosed }

// CapsLoadedEvent reports the size of a loaded capability table.
type CapsLoadedEvent struct {
	SessionID  string `json:"session_id" doc:"Session identifier"`
	Platform   string `json:"platform" example:"cannonlake" doc:"Hardware platform"`
	Entries    int    `json:"entries" example:"31" doc:"Registered profile entrypoints"`
	EncConfigs int    `json:"enc_configs" example:"162" doc:"Encode configurations"`
	DecConfigs int    `json:"dec_configs" example:"24" doc:"Decode configurations"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CapsLoadedEvent.
func (e CapsLoadedEvent) Type() uint32 { return TypeCapsLoaded }

// AttributeQueriedEvent records one attribute query and its status.
type AttributeQueriedEvent struct {
	SessionID  string `json:"session_id" doc:"Session identifier"`
	Platform   string `json:"platform" example:"cannonlake" doc:"Hardware platform"`
	Profile    string `json:"profile" example:"HEVCMain" doc:"Codec profile"`
	Entrypoint string `json:"entrypoint" example:"EncSliceLP" doc:"Entrypoint"`
	Attribute  string `json:"attribute" example:"EncMaxRefFrames" doc:"Attribute type"`
	Value      uint32 `json:"value" doc:"Resolved value"`
	Status     string `json:"status" example:"SUCCESS" doc:"Query status"`
}

// Type returns the event type identifier for AttributeQueriedEvent.
func (e AttributeQueriedEvent) Type() uint32 { return TypeAttributeQueried }

// ResolutionCheckedEvent records one encode or decode resolution check.
type ResolutionCheckedEvent struct {
	SessionID string `json:"session_id" doc:"Session identifier"`
	Platform  string `json:"platform" example:"cannonlake" doc:"Hardware platform"`
	Direction string `json:"direction" example:"encode" doc:"encode or decode"`
	Profile   string `json:"profile" example:"H264Main" doc:"Codec profile"`
	Width     uint32 `json:"width" example:"1920" doc:"Requested width"`
	Height    uint32 `json:"height" example:"1088" doc:"Requested height"`
	Supported bool   `json:"supported" doc:"Whether the resolution was accepted"`
	Status    string `json:"status" example:"SUCCESS" doc:"Check status"`
}

// Type returns the event type identifier for ResolutionCheckedEvent.
func (e ResolutionCheckedEvent) Type() uint32 { return TypeResolutionChecked }

// DumpWrittenEvent is published for every file written by the dump sink.
type DumpWrittenEvent struct {
	Attr      string `json:"attr" example:"DumpCapsTable" doc:"Dump attribute"`
	Path      string `json:"path" example:"/tmp/mediacaps/0000-CapsTable.txt" doc:"Written file"`
	Bytes     int    `json:"bytes" doc:"Bytes written"`
	Frame     uint32 `json:"frame" doc:"Frame number"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DumpWrittenEvent.
func (e DumpWrittenEvent) Type() uint32 { return TypeDumpWritten }

// ConfigReloadedEvent is published after a watched config file was reloaded.
type ConfigReloadedEvent struct {
	Path      string `json:"path" doc:"Reloaded file"`
	Error     string `json:"error,omitempty" doc:"Load error, empty on success"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ConfigReloadedEvent.
func (e ConfigReloadedEvent) Type() uint32 { return TypeConfigReloaded }
