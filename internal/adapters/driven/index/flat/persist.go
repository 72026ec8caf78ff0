package flat

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
	"github.com/Leafra-ai/LeafraSDK/internal/logger"
)

// Persisted layout: two co-located artifacts under a shared path prefix.
// <prefix>.vec holds the vectors (magic, format version, dimension,
// count, float32 little-endian data); <prefix>.json holds the parallel
// content and metadata arrays plus the dimension.
const (
	vectorFileExt   = ".vec"
	manifestFileExt = ".json"

	formatVersion = 1
)

// vectorFileMagic identifies a Leafra vector artifact.
var vectorFileMagic = [4]byte{'L', 'F', 'V', 'I'}

// manifest is the structured artifact, positionally aligned with the
// vector artifact.
type manifest struct {
	Content   []string         `json:"content"`
	Metadata  []map[string]any `json:"metadata"`
	Dimension int              `json:"dimension"`
}

// Save persists the index under the given path prefix, rewriting both
// artifacts wholesale. Not atomic against concurrent Add; the index
// assumes single-writer usage.
func (i *Index) Save(pathPrefix string) error {
	var buf bytes.Buffer
	buf.Write(vectorFileMagic[:])

	header := []uint32{formatVersion, uint32(i.dimension), uint32(len(i.entries))}
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("%w: encoding header: %w", domain.ErrIndexPersistence, err)
	}
	for _, e := range i.entries {
		if err := binary.Write(&buf, binary.LittleEndian, e.vector); err != nil {
			return fmt.Errorf("%w: encoding vectors: %w", domain.ErrIndexPersistence, err)
		}
	}

	m := manifest{
		Content:   make([]string, 0, len(i.entries)),
		Metadata:  make([]map[string]any, 0, len(i.entries)),
		Dimension: i.dimension,
	}
	for _, e := range i.entries {
		m.Content = append(m.Content, e.content)
		m.Metadata = append(m.Metadata, e.metadata)
	}
	manifestJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: encoding manifest: %w", domain.ErrIndexPersistence, err)
	}

	if err := os.WriteFile(pathPrefix+vectorFileExt, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexPersistence, err)
	}
	if err := os.WriteFile(pathPrefix+manifestFileExt, manifestJSON, 0600); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexPersistence, err)
	}

	logger.Debug("Index saved: %d entries under %s", len(i.entries), pathPrefix)
	return nil
}

// Load restores the index from the path prefix. No persisted state is a
// no-op, and unreadable or mismatched artifacts are treated the same
// way: the index is left empty and a warning is logged. Load never
// fails the caller for a bad file on disk.
func (i *Index) Load(pathPrefix string) error {
	vecData, vecErr := os.ReadFile(pathPrefix + vectorFileExt)
	manData, manErr := os.ReadFile(pathPrefix + manifestFileExt)

	if os.IsNotExist(vecErr) && os.IsNotExist(manErr) {
		// No prior index.
		return nil
	}
	if vecErr != nil || manErr != nil {
		logger.Warn("Index artifacts under %s are incomplete, starting fresh", pathPrefix)
		i.entries = nil
		return nil
	}

	entries, err := decode(vecData, manData, i.dimension)
	if err != nil {
		logger.Warn("Index artifacts under %s are unreadable (%v), starting fresh", pathPrefix, err)
		i.entries = nil
		return nil
	}

	i.entries = entries
	logger.Debug("Index loaded: %d entries from %s", len(entries), pathPrefix)
	return nil
}

// decode parses both artifacts and cross-checks their alignment.
func decode(vecData, manData []byte, dimension int) ([]entry, error) {
	r := bytes.NewReader(vecData)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if magic != vectorFileMagic {
		return nil, fmt.Errorf("bad magic %q", magic)
	}

	var header [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	version, dim, count := header[0], int(header[1]), int(header[2])
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", version)
	}
	if dim != dimension {
		return nil, fmt.Errorf("stored dimension %d does not match index dimension %d", dim, dimension)
	}

	var m manifest
	if err := json.Unmarshal(manData, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Dimension != dimension {
		return nil, fmt.Errorf("manifest dimension %d does not match index dimension %d", m.Dimension, dimension)
	}
	if len(m.Content) != count || len(m.Metadata) != count {
		return nil, fmt.Errorf("manifest holds %d/%d entries, vector artifact holds %d",
			len(m.Content), len(m.Metadata), count)
	}

	entries := make([]entry, 0, count)
	for n := 0; n < count; n++ {
		vector := make([]float32, dimension)
		if err := binary.Read(r, binary.LittleEndian, vector); err != nil {
			return nil, fmt.Errorf("reading vector %d: %w", n, err)
		}
		entries = append(entries, entry{
			vector:   vector,
			content:  m.Content[n],
			metadata: restoreMetadata(m.Metadata[n]),
		})
	}
	return entries, nil
}

// Metadata fields written as ints during ingestion. json.Unmarshal into
// map[string]any turns every number into a float64, so a reloaded index
// would otherwise hand back metadata with different types than the one
// that was saved.
var (
	intMetadataKeys      = []string{"chunk_index", "chunk_count", "primary_page"}
	intSliceMetadataKeys = []string{"page_numbers"}
)

// restoreMetadata converts the known integer-valued fields back from
// their JSON float64 form.
func restoreMetadata(md map[string]any) map[string]any {
	if md == nil {
		return nil
	}
	for _, key := range intMetadataKeys {
		if f, ok := md[key].(float64); ok {
			md[key] = int(f)
		}
	}
	for _, key := range intSliceMetadataKeys {
		raw, ok := md[key].([]any)
		if !ok {
			continue
		}
		ints := make([]int, 0, len(raw))
		for _, v := range raw {
			f, ok := v.(float64)
			if !ok {
				ints = nil
				break
			}
			ints = append(ints, int(f))
		}
		if ints != nil {
			md[key] = ints
		}
	}
	return md
}
