package medicalrecords

// RecordType es el tipo de entrada de la historia clínica.
// @Enum CHECKUP, VACCINATION, DEWORMING, PRESCRIPTION, DIAGNOSIS, SURGERY, LAB_RESULT, ALLERGY, NOTE
type RecordType string

const (
	TypeCheckup      RecordType = "CHECKUP"
	TypeVaccination  RecordType = "VACCINATION"
	TypeDeworming    RecordType = "DEWORMING"
	TypePrescription RecordType = "PRESCRIPTION"
	TypeDiagnosis    RecordType = "DIAGNOSIS"
	TypeSurgery      RecordType = "SURGERY"
	TypeLabResult    RecordType = "LAB_RESULT"
	TypeAllergy      RecordType = "ALLERGY"
	TypeNote         RecordType = "NOTE"
)

func (t RecordType) Valid() bool {
	switch t {
	case TypeCheckup, TypeVaccination, TypeDeworming, TypePrescription,
		TypeDiagnosis, TypeSurgery, TypeLabResult, TypeAllergy, TypeNote:
		return true
	}
	return false
}

// Recurrent: tipos que suelen llevar próxima dosis/control.
func (t RecordType) Recurrent() bool {
	return t == TypeVaccination || t == TypeDeworming || t == TypeCheckup || t == TypePrescription
}

type ActorType string

const (
	ActorTypeOwnerUser   ActorType = "OWNER_USER"
	ActorTypeClinicStaff ActorType = "CLINIC_STAFF"
	ActorTypeOrgStaff    ActorType = "ORG_STAFF"
)

// @Enum private, shared
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityShared  Visibility = "shared"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityShared
}

type Status string

const (
	StatusActive Status = "active"
	StatusVoided Status = "voided"
)
