// Package reportdef loads report definitions authored in CUE.
//
// A definition file declares the report's dynamic fields (ids, keys,
// labels, types, options, attendance roster sizes) and optionally its
// insight configuration. Definitions are compiled through the CUE Go
// API with positioned, coded errors, then handed to the engine as
// plain schema.FieldDefinition values.
//
// Example:
//
//	report: celulas: {
//		name: "Reporte semanal de células"
//		field: asistencia: {
//			key:    "asistencia"
//			label:  "Asistencia"
//			type:   "MEMBER_ATTENDANCE"
//			roster: 12
//		}
//		field: ofrenda: {key: "ofrenda", type: "CURRENCY"}
//		insight: [{field: "ofrenda", type: "max"}]
//	}
package reportdef
