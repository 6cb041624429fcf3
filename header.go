package webm

// writeEBMLHeader emits the EBML header master that must precede the
// Segment master in every WebM stream: fixed version/length fields
// plus a DocType of "webm" pinning this as the WebM profile of
// Matroska rather than full Matroska.
func writeEBMLHeader(w Writer) error {
	const (
		ebmlVersion        = 1
		ebmlReadVersion    = 1
		ebmlMaxIDLength    = 4
		ebmlMaxSizeLength  = 8
		docType            = "webm"
		docTypeVersion     = 2
		docTypeReadVersion = 2
	)

	ps := UintElementSize(idEBMLVersion, ebmlVersion) +
		UintElementSize(idEBMLReadVersion, ebmlReadVersion) +
		UintElementSize(idEBMLMaxIDLength, ebmlMaxIDLength) +
		UintElementSize(idEBMLMaxSizeLength, ebmlMaxSizeLength) +
		StringElementSize(idDocType, docType) +
		UintElementSize(idDocTypeVersion, docTypeVersion) +
		UintElementSize(idDocTypeReadVersion, docTypeReadVersion)

	if err := WriteMasterElement(w, idEBML, uint64(ps)); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idEBMLVersion, ebmlVersion); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idEBMLReadVersion, ebmlReadVersion); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idEBMLMaxIDLength, ebmlMaxIDLength); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idEBMLMaxSizeLength, ebmlMaxSizeLength); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteStringElement(w, idDocType, docType); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idDocTypeVersion, docTypeVersion); err != nil {
		return wrapWriterErr(err)
	}
	if err := WriteUintElement(w, idDocTypeReadVersion, docTypeReadVersion); err != nil {
		return wrapWriterErr(err)
	}
	return nil
}
