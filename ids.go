package webm

// Matroska/WebM element IDs used by this muxer. Each constant's numeric
// width (1-4 significant bytes) is also its on-wire ID width; idWidth
// derives that from the value itself rather than carrying a separate
// table.
const (
	idEBML               uint32 = 0x1A45DFA3
	idEBMLVersion        uint32 = 0x4286
	idEBMLReadVersion    uint32 = 0x42F7
	idEBMLMaxIDLength    uint32 = 0x42F2
	idEBMLMaxSizeLength  uint32 = 0x42F3
	idDocType            uint32 = 0x4282
	idDocTypeVersion     uint32 = 0x4287
	idDocTypeReadVersion uint32 = 0x4285

	idSegment uint32 = 0x18538067

	idSeekHead     uint32 = 0x114D9B74
	idSeek         uint32 = 0x4DBB
	idSeekID       uint32 = 0x53AB
	idSeekPosition uint32 = 0x53AC

	idInfo          uint32 = 0x1549A966
	idTimecodeScale uint32 = 0x2AD7B1
	idDuration      uint32 = 0x4489
	idMuxingApp     uint32 = 0x4D80
	idWritingApp    uint32 = 0x5741

	idTracks       uint32 = 0x1654AE6B
	idTrackEntry   uint32 = 0xAE
	idTrackNumber  uint32 = 0xD7
	idTrackUID     uint32 = 0x73C5
	idTrackType    uint32 = 0x83
	idCodecID      uint32 = 0x86
	idCodecPrivate uint32 = 0x63A2
	idLanguage     uint32 = 0x22B59C
	idName         uint32 = 0x536E

	idVideo          uint32 = 0xE0
	idPixelWidth     uint32 = 0xB0
	idPixelHeight    uint32 = 0xBA
	idDisplayWidth   uint32 = 0x54B0
	idDisplayHeight  uint32 = 0x54BA
	idStereoMode     uint32 = 0x53B8
	idFrameRate      uint32 = 0x2383E3

	idAudio              uint32 = 0xE1
	idSamplingFrequency  uint32 = 0xB5
	idChannels           uint32 = 0x9F
	idBitDepth           uint32 = 0x6264

	idCluster     uint32 = 0x1F43B675
	idTimecode    uint32 = 0xE7
	idSimpleBlock uint32 = 0xA3

	idCues              uint32 = 0x1C53BB6B
	idCuePoint          uint32 = 0xBB
	idCueTime           uint32 = 0xB3
	idCueTrackPositions uint32 = 0xB7
	idCueTrack          uint32 = 0xF7
	idCueClusterPosition uint32 = 0xF1
	idCueBlockNumber    uint32 = 0x5378

	idVoid uint32 = 0xEC
)
