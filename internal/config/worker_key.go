package config

type WorkerKeyStruct struct {
	PersistRegistrationsQueue string
	// FailedRegistrationsQueue holds registrations that could not be
	// persisted, for manual inspection.
	FailedRegistrationsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistRegistrationsQueue: "persist_registrations_queue",
	FailedRegistrationsQueue:  "failed_registrations",
}
