package event

var typeToName = [EventTypeCount]string{
	EventNone:            "EventNone",
	EventEntitySpawned:   "EventEntitySpawned",
	EventHazardPassed:    "EventHazardPassed",
	EventHazardHit:       "EventHazardHit",
	EventCollected:       "EventCollected",
	EventHealRequest:     "EventHealRequest",
	EventEntityDespawned: "EventEntityDespawned",
}

// String returns the registered name of the event type
func (et EventType) String() string {
	if et < 0 || et >= EventTypeCount {
		return "EventUnknown"
	}
	return typeToName[et]
}
