// Package phenopb builds the subset of the Phenopacket-Schema v2 message
// shapes phenolint needs to decode/encode Protobuf input, without running
// protoc or vendoring generated code (the repo's build never shells out to
// the Go toolchain or a proto compiler). It uses
// google.golang.org/protobuf's reflection machinery — protodesc to turn a
// hand-built descriptorpb.FileDescriptorProto into a live
// protoreflect.FileDescriptor, and dynamicpb to get a proto.Message
// implementation for it — the same approach nmxmxh-inos_v1 reaches for
// proto.Marshal/Unmarshal, generalized from generated structs to runtime
// descriptors.
package phenopb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const packageName = "phenolint.phenopacket.v2"

var (
	fileDescriptor protoreflect.FileDescriptor
	phenopacketMsg protoreflect.MessageDescriptor
)

func init() {
	fdp := buildFileDescriptorProto()
	file, err := protodesc.NewFile(fdp, nil)
	if err != nil {
		panic(fmt.Sprintf("phenopb: building file descriptor: %v", err))
	}
	fileDescriptor = file

	msg := file.Messages().ByName("Phenopacket")
	if msg == nil {
		panic("phenopb: Phenopacket message missing from descriptor")
	}
	phenopacketMsg = msg
}

// NewPhenopacket returns an empty, mutable dynamicpb message for the
// top-level Phenopacket type.
func NewPhenopacket() *dynamicpb.Message {
	return dynamicpb.NewMessage(phenopacketMsg)
}

// Decode parses Protobuf-encoded bytes as a Phenopacket.
func Decode(data []byte) (proto.Message, error) {
	m := NewPhenopacket()
	if err := proto.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("phenopb: unmarshal: %w", err)
	}
	return m, nil
}

// Encode serializes a Phenopacket message to Protobuf wire format.
func Encode(m proto.Message) ([]byte, error) {
	data, err := proto.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("phenopb: marshal: %w", err)
	}
	return data, nil
}

type fieldSpec struct {
	name     string
	jsonName string
	number   int32
	label    descriptorpb.FieldDescriptorProto_Label
	typ      descriptorpb.FieldDescriptorProto_Type
	typeName string // only for TYPE_MESSAGE
}

func field(f fieldSpec) *descriptorpb.FieldDescriptorProto {
	fd := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(f.name),
		Number:   proto.Int32(f.number),
		Label:    f.label.Enum(),
		Type:     f.typ.Enum(),
		JsonName: proto.String(f.jsonName),
	}
	if f.typeName != "" {
		fd.TypeName = proto.String("." + packageName + "." + f.typeName)
	}
	return fd
}

func opt(name, jsonName string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return field(fieldSpec{name: name, jsonName: jsonName, number: number, label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, typ: typ})
}

func msgField(name, jsonName string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	return field(fieldSpec{name: name, jsonName: jsonName, number: number, label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, typ: descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, typeName: typeName})
}

func repeatedMsgField(name, jsonName string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	return field(fieldSpec{name: name, jsonName: jsonName, number: number, label: descriptorpb.FieldDescriptorProto_LABEL_REPEATED, typ: descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, typeName: typeName})
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(name),
		Field: fields,
	}
}

// buildFileDescriptorProto hand-assembles the Phenopacket v2 subset this
// linter operates on. Field names/numbers/JSON names mirror the upstream
// Phenopacket-Schema v2 protobuf definitions closely enough that
// protojson.Marshal produces the same camelCase keys (`phenotypicFeatures`,
// `metaData`, `genomicInterpretations`, ...) the rule set and spec's
// scenarios reference.
func buildFileDescriptorProto() *descriptorpb.FileDescriptorProto {
	ontologyClass := message("OntologyClass",
		opt("id", "id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("label", "label", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
	)

	externalReference := message("ExternalReference",
		opt("id", "id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("reference", "reference", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("description", "description", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
	)

	evidence := message("Evidence",
		msgField("evidence_code", "evidenceCode", 1, "OntologyClass"),
		msgField("reference", "reference", 2, "ExternalReference"),
	)

	timeElement := message("TimeElement",
		msgField("ontology_class", "ontologyClass", 1, "OntologyClass"),
		opt("age", "age", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
	)

	phenotypicFeature := message("PhenotypicFeature",
		opt("description", "description", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		msgField("type", "type", 2, "OntologyClass"),
		opt("excluded", "excluded", 3, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
		repeatedMsgField("modifiers", "modifiers", 4, "OntologyClass"),
		msgField("onset", "onset", 5, "TimeElement"),
		msgField("resolution", "resolution", 6, "TimeElement"),
		repeatedMsgField("evidence", "evidence", 7, "Evidence"),
	)

	disease := message("Disease",
		msgField("term", "term", 1, "OntologyClass"),
		opt("excluded", "excluded", 2, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
		repeatedMsgField("onset", "onset", 3, "TimeElement"),
	)

	genomicInterpretation := message("GenomicInterpretation",
		opt("subject_or_biosample_id", "subjectOrBiosampleId", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("interpretation_status", "interpretationStatus", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
	)

	diagnosis := message("Diagnosis",
		msgField("disease", "disease", 1, "OntologyClass"),
		repeatedMsgField("genomic_interpretations", "genomicInterpretations", 2, "GenomicInterpretation"),
	)

	interpretation := message("Interpretation",
		opt("id", "id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("progress_status", "progressStatus", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		msgField("diagnosis", "diagnosis", 3, "Diagnosis"),
	)

	resource := message("Resource",
		opt("id", "id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("name", "name", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("url", "url", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("version", "version", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("namespace_prefix", "namespacePrefix", 5, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("iri_prefix", "iriPrefix", 6, descriptorpb.FieldDescriptorProto_TYPE_STRING),
	)

	metaData := message("MetaData",
		opt("created", "created", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("created_by", "createdBy", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		repeatedMsgField("resources", "resources", 3, "Resource"),
		opt("phenopacket_schema_version", "phenopacketSchemaVersion", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
	)

	vitalStatus := message("VitalStatus",
		opt("status", "status", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("time_of_death", "timeOfDeath", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		msgField("cause_of_death", "causeOfDeath", 3, "OntologyClass"),
	)

	individual := message("Individual",
		opt("id", "id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		msgField("vital_status", "vitalStatus", 2, "VitalStatus"),
		msgField("taxonomy", "taxonomy", 3, "OntologyClass"),
		opt("sex", "sex", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
	)

	phenopacket := message("Phenopacket",
		opt("id", "id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		msgField("subject", "subject", 2, "Individual"),
		repeatedMsgField("phenotypic_features", "phenotypicFeatures", 3, "PhenotypicFeature"),
		repeatedMsgField("diseases", "diseases", 5, "Disease"),
		repeatedMsgField("interpretations", "interpretations", 7, "Interpretation"),
		msgField("meta_data", "metaData", 12, "MetaData"),
	)

	cohort := message("Cohort",
		opt("id", "id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		opt("description", "description", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		repeatedMsgField("members", "members", 3, "Phenopacket"),
		msgField("meta_data", "metaData", 4, "MetaData"),
	)

	family := message("Family",
		opt("id", "id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		msgField("proband", "proband", 2, "Phenopacket"),
		repeatedMsgField("relatives", "relatives", 3, "Phenopacket"),
		msgField("meta_data", "metaData", 5, "MetaData"),
	)

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("phenolint/phenopacket.proto"),
		Package: proto.String(packageName),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			ontologyClass,
			externalReference,
			evidence,
			timeElement,
			phenotypicFeature,
			disease,
			genomicInterpretation,
			diagnosis,
			interpretation,
			resource,
			metaData,
			vitalStatus,
			individual,
			phenopacket,
			cohort,
			family,
		},
	}
}
