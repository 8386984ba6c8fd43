package model

import "fmt"

// Slot identifies a position in the classifier's input vector.
// The order of the constants is the order the classifier was trained on.
type Slot int

const (
	SlotGender Slot = iota
	SlotAge
	SlotNumberOfFailures
	SlotFinalGrade
	SlotAbsences
	SlotStudyTime
	SlotParentalStatusA
	SlotParentalStatusB
	SlotActivities

	// One-hot columns of the training data that no form input drives.
	SlotSchoolA
	SlotSchoolB
	SlotFamilySize1
	SlotFamilySize2
	SlotMjob1
	SlotMjob2
	SlotMjob3
	SlotMjob4
	SlotMjob5
	SlotFjob1
	SlotFjob2
	SlotFjob3
	SlotFjob4
	SlotFjob5
	SlotReason1
	SlotReason2
	SlotReason3
	SlotReason4
	SlotGuardian1
	SlotGuardian2
	SlotTravelTime1
	SlotTravelTime2
	SlotHealth1
	SlotHealth2
	SlotHealth3

	slotCount
)

// FeatureCount is the width of the classifier input.
const FeatureCount = int(slotCount)

var slotNames = [FeatureCount]string{
	SlotGender:           "Gender",
	SlotAge:              "Age",
	SlotNumberOfFailures: "Number_of_Failures",
	SlotFinalGrade:       "Final_Grade",
	SlotAbsences:         "Absences",
	SlotStudyTime:        "Study_Time",
	SlotParentalStatusA:  "Parental_Status_A",
	SlotParentalStatusB:  "Parental_Status_B",
	SlotActivities:       "Activities",
	SlotSchoolA:          "Dummy_School_A",
	SlotSchoolB:          "Dummy_School_B",
	SlotFamilySize1:      "Dummy_Family_Size_1",
	SlotFamilySize2:      "Dummy_Family_Size_2",
	SlotMjob1:            "Dummy_Mjob_1",
	SlotMjob2:            "Dummy_Mjob_2",
	SlotMjob3:            "Dummy_Mjob_3",
	SlotMjob4:            "Dummy_Mjob_4",
	SlotMjob5:            "Dummy_Mjob_5",
	SlotFjob1:            "Dummy_Fjob_1",
	SlotFjob2:            "Dummy_Fjob_2",
	SlotFjob3:            "Dummy_Fjob_3",
	SlotFjob4:            "Dummy_Fjob_4",
	SlotFjob5:            "Dummy_Fjob_5",
	SlotReason1:          "Dummy_Reason_1",
	SlotReason2:          "Dummy_Reason_2",
	SlotReason3:          "Dummy_Reason_3",
	SlotReason4:          "Dummy_Reason_4",
	SlotGuardian1:        "Dummy_Guardian_1",
	SlotGuardian2:        "Dummy_Guardian_2",
	SlotTravelTime1:      "Dummy_TravelTime_1",
	SlotTravelTime2:      "Dummy_TravelTime_2",
	SlotHealth1:          "Dummy_Health_1",
	SlotHealth2:          "Dummy_Health_2",
	SlotHealth3:          "Dummy_Health_3",
}

// String returns the training-time column name of the slot.
func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// Valid reports whether s addresses a position inside the schema.
func (s Slot) Valid() bool {
	return s >= 0 && s < slotCount
}

// FeatureNames returns the schema column names in vector order.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, slotNames[:])
	return names
}

// FeatureVector is a dense classifier input row. The array type pins its
// length to the schema width.
type FeatureVector [FeatureCount]float64

// Get returns the value held in slot s.
func (v FeatureVector) Get(s Slot) float64 {
	return v[s]
}

// Row returns the vector as a single-row matrix, the shape classifiers consume.
func (v FeatureVector) Row() [][]float64 {
	row := make([]float64, FeatureCount)
	copy(row, v[:])
	return [][]float64{row}
}
