package http1

type chunkedState int

const (
	eChunkLength chunkedState = iota
	eChunkExtension
	eChunkBody
	eChunkBodyCRLF
	eLastChunk
)
