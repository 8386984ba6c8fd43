package model

import "fmt"

// Field is a named input collected from the prediction form.
type Field int

const (
	FieldGender Field = iota
	FieldAge
	FieldNumberOfFailures
	FieldFinalGrade
	FieldParentalStatus
	FieldAbsences
	FieldStudyTime
	FieldActivities

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldGender:           "Gender",
	FieldAge:              "Age",
	FieldNumberOfFailures: "Number_of_Failures",
	FieldFinalGrade:       "Final_Grade",
	FieldParentalStatus:   "Parental_Status",
	FieldAbsences:         "Absences",
	FieldStudyTime:        "Study_Time",
	FieldActivities:       "Activities",
}

// String returns the HTML form name of the field.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// RequiredFields lists every field a prediction request must carry, in form order.
func RequiredFields() []Field {
	fields := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		fields = append(fields, f)
	}
	return fields
}

// FormInput holds the raw values submitted for one prediction. A field that
// was not submitted is absent from the map.
type FormInput map[Field]string

// Lookup returns the raw value for f and whether it was submitted.
func (in FormInput) Lookup(f Field) (string, bool) {
	v, ok := in[f]
	return v, ok
}
