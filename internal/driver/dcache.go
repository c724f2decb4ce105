package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"vetch/internal/diag"
	"vetch/internal/hir"
	"vetch/internal/source"
)

// Increment when the Record format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest identifies a body's structural content.
type Digest [sha256.Size]byte

// Record is the serializable form of one rendered diagnostic.
// Notes are not cached: none of the pass findings carry them.
type Record struct {
	Severity uint8
	Code     uint16
	Message  string
	File     uint32
	Start    uint32
	End      uint32
}

type diskPayload struct {
	Schema  uint16
	Records []Record
}

// DiskCache хранит готовые диагностики по дайджесту тела на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache at dir, or at the standard
// XDG location when dir is empty.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "vetch")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "bodies" — чтобы кэш было удобно чистить.
	return filepath.Join(c.dir, "bodies", hexKey+".mp")
}

// Put serializes the records for a body digest.
func (c *DiskCache) Put(key Digest, records []Record) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&diskPayload{Schema: diskCacheSchemaVersion, Records: records}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the records for a body digest. A schema mismatch or a
// corrupt entry reads as a miss.
func (c *DiskCache) Get(key Digest) ([]Record, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		// Повреждённый или отсутствующий кэш не должен ломать запуск.
		return nil, false
	}
	defer f.Close()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	return payload.Records, true
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// BodyDigest hashes a body's node kinds, spans and payloads. Two bodies
// with the same digest produce the same diagnostics.
func BodyDigest(body *hir.Body) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "owner %d kind %d root %d\n", body.Owner, body.OwnerKind, body.Root)
	for _, param := range body.Params {
		fmt.Fprintf(h, "param %d\n", param)
	}
	body.EachExpr(func(id hir.ExprID, expr *hir.Expr) {
		fmt.Fprintf(h, "e%d %d %v %#v\n", id, expr.Kind, expr.Span, expr.Data)
	})
	body.EachPat(func(id hir.PatID, pat *hir.Pat) {
		fmt.Fprintf(h, "p%d %d %v %#v\n", id, pat.Kind, pat.Span, pat.Data)
	})
	var d Digest
	h.Sum(d[:0])
	return d
}

func recordBag(bag *diag.Bag) []Record {
	items := bag.Items()
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, Record{
			Severity: uint8(item.Severity),
			Code:     uint16(item.Code),
			Message:  item.Message,
			File:     uint32(item.Primary.File),
			Start:    item.Primary.Start,
			End:      item.Primary.End,
		})
	}
	return records
}

func restoreBag(bag *diag.Bag, records []Record) {
	for _, rec := range records {
		span := source.Span{File: source.FileID(rec.File), Start: rec.Start, End: rec.End}
		bag.Add(diag.New(diag.Severity(rec.Severity), diag.Code(rec.Code), span, rec.Message))
	}
}
