package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/storage"
	"github.com/cafeteca/cafeteca-server/pkg/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 60s", func() {
		metrics.SampleSystem()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.gormDB.
			Where("opt_time < ? ", time.Now().
				Add(-time.Hour*24*90)).Delete(domain.SysOprLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SweepOrphanImages()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// referencedImageNames collects the object names every entity of a kind
// still points at.
func (a *Application) referencedImageNames(bucket storage.Bucket) map[string]bool {
	urls := make([]string, 0, 64)
	switch bucket.Name {
	case storage.CategoryImages.Name:
		a.gormDB.Model(&domain.Category{}).Where("image_url <> ''").Pluck("image_url", &urls)
	case storage.HomeImages.Name:
		a.gormDB.Model(&domain.HomeSection{}).Where("image_url <> ''").Pluck("image_url", &urls)
	case storage.EventImages.Name:
		a.gormDB.Model(&domain.Event{}).Where("image_url <> ''").Pluck("image_url", &urls)
	}
	refs := make(map[string]bool, len(urls))
	for _, u := range urls {
		refs[storage.NameFromURL(u)] = true
	}
	return refs
}

// SweepOrphanImages removes stored objects no entity references anymore.
// Objects younger than a day are skipped: an upload may precede the entity
// write that attaches it.
func (a *Application) SweepOrphanImages() {
	cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()
	for _, bucket := range []storage.Bucket{storage.CategoryImages, storage.HomeImages, storage.EventImages} {
		names, err := a.store.List(bucket)
		if err != nil {
			zap.L().Warn("orphan sweep: list failed", zap.String("bucket", bucket.Name), zap.Error(err))
			continue
		}
		if len(names) == 0 {
			continue
		}
		refs := a.referencedImageNames(bucket)
		removed := 0
		for _, name := range names {
			if refs[name] {
				continue
			}
			if objectMillis(name) > cutoff {
				continue
			}
			if err := a.store.Remove(bucket, name); err == nil {
				removed++
			}
		}
		if removed > 0 {
			zap.L().Info("orphan sweep removed objects",
				zap.String("bucket", bucket.Name),
				zap.Int("removed", removed))
		}
	}
}

// objectMillis extracts the upload timestamp embedded in object names
// (<owner>_<unixmillis>.<ext>). Returns 0 when the name has another shape.
func objectMillis(name string) int64 {
	base := name
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	i := strings.LastIndexByte(base, '_')
	if i < 0 {
		return 0
	}
	ms, err := strconv.ParseInt(base[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return ms
}
