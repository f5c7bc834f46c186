package ecs

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

var (
	actors = query.NewQuery(filter.Contains(
		TransformComponent, FactionComponent, HealthComponent, BodyComponent,
	))
	detectors = query.NewQuery(filter.Contains(TransformComponent, FactionComponent, TargetComponent))
	aiActors  = query.NewQuery(filter.Contains(AIComponent, TargetComponent, LocomotionComponent))
	walkers   = query.NewQuery(filter.Contains(TransformComponent, VelocityComponent, LocomotionComponent))
	executing = query.NewQuery(filter.Contains(ExecutingComponent, WeaponPoseComponent))
	colliders = query.NewQuery(filter.Contains(ColliderComponent, DamageComponent, KnockbackComponent))
	knocked   = query.NewQuery(filter.Contains(KnockbackTimerComponent, VelocityComponent))
	stunned   = query.NewQuery(filter.Contains(StunComponent))
	players   = query.NewQuery(filter.Contains(PlayerComponent, TransformComponent, LocomotionComponent))
)

// RefreshTransforms snapshots every actor's transform into the
// cross-reference cache. Step 0.
func RefreshTransforms(w *World) {
	clear(w.Refs.transforms)
	actors.Each(w.World, func(e *donburi.Entry) {
		w.Refs.transforms[e.Entity()] = TransformComponent.GetValue(e)
	})
}

// UpdateTargeting runs one scan for every target detector. Step 2.
func UpdateTargeting(w *World) {
	var candidates []ai.Candidate
	for _, e := range sortedEntries(w, actors) {
		if HealthComponent.Get(e).Dead() {
			continue
		}
		t, ok := w.Refs.Transform(e.Entity())
		if !ok {
			continue
		}
		candidates = append(candidates, ai.Candidate{
			ID:       ai.EntityID(e.Entity()),
			Faction:  FactionComponent.GetValue(e),
			Position: t.Position,
		})
	}

	for _, e := range sortedEntries(w, detectors) {
		self, ok := w.Refs.Transform(e.Entity())
		if !ok {
			w.Log.Warn("no transform snapshot", entityField("actor", e.Entity()))
			continue
		}
		det := TargetComponent.Get(e)
		next, change := det.Scan(self.Position, FactionComponent.GetValue(e), candidates)
		if change != ai.Unchanged {
			w.Log.Debug("target changed",
				entityField("actor", e.Entity()),
				zap.Stringer("change", change),
				zap.Uint64("target", uint64(next.Target)))
		}
		*det = next
	}
}

// UpdateDecisions steers AI actors toward their target and asks idle
// weapons for the next move of the decision loop. Step 3.
func UpdateDecisions(w *World) {
	for _, e := range sortedEntries(w, aiActors) {
		actor := e.Entity()
		loco := LocomotionComponent.Get(e)
		loco.Direction = geom.Vec2{}

		if e.HasComponent(StunComponent) {
			continue
		}
		det := TargetComponent.GetValue(e)
		if !det.HasTarget() {
			continue
		}
		self, ok := w.Refs.Transform(actor)
		if !ok {
			continue
		}
		target, ok := w.Refs.Transform(donburi.Entity(det.Target))
		if !ok {
			w.Log.Warn("target has no transform snapshot",
				entityField("actor", actor),
				zap.Uint64("target", uint64(det.Target)))
			continue
		}

		ctl := AIComponent.Get(e)
		dist := geom.Distance(self.Position, target.Position)
		if dist > w.holdDistance(ctl) {
			loco.Direction = target.Position.Sub(self.Position).Normalize()
		}

		weapon, ok := w.Refs.Weapon(actor)
		if !ok {
			w.Log.Warn("actor has no weapon", entityField("actor", actor))
			continue
		}
		if w.Busy(actor) {
			continue
		}
		id, ok := ctl.Loop.Select(dist)
		if !ok {
			continue
		}
		MoveRequests.Publish(w.World, ExecuteMove{Weapon: weapon, Move: id, Input: inputFor(w.Catalog, id)})
	}
}

// holdDistance is how close an AI actor walks before standing its ground:
// its stop-chase distance or the best range of its next move, whichever
// is larger.
func (w *World) holdDistance(ctl *AIControl) float64 {
	hold := ctl.StopChase
	if opt, ok := ctl.Loop.Peek(); ok {
		if m, err := w.Catalog.Lookup(opt.Move); err == nil {
			hold = math.Max(hold, m.BestRangeMin)
		}
	}
	return hold
}

// inputFor picks the input kind an AI uses to request id.
func inputFor(c *move.Catalog, id move.ID) move.InputKind {
	if m, err := c.Lookup(id); err == nil && m.Category == move.CategoryInterrupt {
		return move.InputInterrupt
	}
	return move.InputAttack
}

// UpdateLocomotion walks actors along their desired direction and
// integrates velocity with linear damping. Step 4.
func UpdateLocomotion(w *World, dt float64) {
	if dt <= 0 {
		return
	}
	damp := math.Max(0, 1-w.Tunables.LinearDamping*dt)
	walkers.Each(w.World, func(e *donburi.Entry) {
		t := TransformComponent.Get(e)
		vel := VelocityComponent.Get(e)
		loco := LocomotionComponent.GetValue(e)

		if !e.HasComponent(StunComponent) && !loco.Direction.IsZero() {
			speed := w.walkSpeed(e, loco)
			t.Position = t.Position.Add(loco.Direction.Normalize().Scale(speed * dt))
		}
		t.Position = t.Position.Add(vel.Scale(dt))
		vel.Vec2 = vel.Scale(damp)

		if w.Tunables.Width > 0 && w.Tunables.Height > 0 {
			t.Position.X = math.Max(0, math.Min(w.Tunables.Width, t.Position.X))
			t.Position.Y = math.Max(0, math.Min(w.Tunables.Height, t.Position.Y))
		}
	})
}

// walkSpeed is the base speed, replaced by the executing move's speed and
// slowed further while the move is Active.
func (w *World) walkSpeed(e *donburi.Entry, loco Locomotion) float64 {
	if !e.HasComponent(ActiveMoveComponent) {
		return loco.Speed
	}
	speed := ActiveMoveComponent.Get(e).Meta.MoveSpeed
	if weapon, ok := w.Refs.Weapon(e.Entity()); ok {
		if we := w.entry(weapon); we != nil && we.HasComponent(ExecutingComponent) &&
			ExecutingComponent.Get(we).State.Phase == move.Active {
			speed *= w.Tunables.AttackSlowdown
		}
	}
	return speed
}

// HandleMoveRequests drains the request queue into the weapons' state
// machines. Step 5.
func HandleMoveRequests(w *World) {
	MoveRequests.ProcessEvents(w.World)
}

func (w *World) handleMoveRequest(req ExecuteMove) {
	we := w.entry(req.Weapon)
	if we == nil {
		w.Log.Warn("move request for missing weapon", entityField("weapon", req.Weapon))
		return
	}
	actor, ok := w.Refs.Actor(req.Weapon)
	if !ok {
		w.Log.Warn("weapon has no actor", entityField("weapon", req.Weapon))
		return
	}
	if req.Input != move.InputInterrupt && w.Stunned(actor) {
		w.Log.Debug("request dropped, stunned", entityField("actor", actor), zap.Stringer("move", req.Move))
		return
	}

	var current *move.State
	if we.HasComponent(ExecutingComponent) {
		st := ExecutingComponent.Get(we).State
		current = &st
	}

	next, outcome, err := w.Catalog.Request(current, req.Move, req.Input)
	if err != nil {
		w.Log.Warn("move request failed",
			entityField("actor", actor),
			zap.Stringer("move", req.Move),
			zap.Error(err))
		return
	}

	switch outcome {
	case move.Dropped:
		w.Log.Debug("request dropped, busy", entityField("actor", actor), zap.Stringer("move", req.Move))
	case move.Queued:
		ExecutingComponent.Get(we).State = next
		w.Log.Debug("chain queued", entityField("actor", actor), zap.Stringer("next", current.Meta.Next))
	case move.Interrupted:
		PhaseEvents.Publish(w.World, PhaseEvent{
			Kind:   EnteredRecovery,
			Actor:  actor,
			Weapon: req.Weapon,
			Move:   current.Meta.ID,
		})
		ExecutingComponent.SetValue(we, Executing{State: next, Actor: actor})
		w.beginMove(actor, req.Weapon, next.Meta)
		w.Log.Debug("move interrupted",
			entityField("actor", actor),
			zap.Stringer("from", current.Meta.ID),
			zap.Stringer("to", next.Meta.ID))
	case move.Started:
		donburi.Add(we, ExecutingComponent, &Executing{State: next, Actor: actor})
		w.beginMove(actor, req.Weapon, next.Meta)
		w.Log.Debug("move started", entityField("actor", actor), zap.Stringer("move", next.Meta.ID))
	}
}

// beginMove marks the actor as executing m and points the collider's
// knockback descriptor at m.
func (w *World) beginMove(actor, weapon donburi.Entity, m move.Metadata) {
	if ae := w.entry(actor); ae != nil {
		if ae.HasComponent(ActiveMoveComponent) {
			ActiveMoveComponent.SetValue(ae, ActiveMove{Meta: m})
		} else {
			donburi.Add(ae, ActiveMoveComponent, &ActiveMove{Meta: m})
		}
	}
	collider, ok := w.Refs.Collider(weapon)
	if !ok {
		w.Log.Warn("weapon has no collider", entityField("weapon", weapon))
		return
	}
	if ce := w.entry(collider); ce != nil {
		KnockbackComponent.SetValue(ce, combat.KnockbackFor(m))
	}
}

// AdvanceMoves ticks every executing move, publishes phase events, drives
// the weapon animation, and drains the phase outbox. Step 6.
func AdvanceMoves(w *World, dt float64) {
	var completed []*donburi.Entry
	for _, we := range sortedEntries(w, executing) {
		exec := ExecutingComponent.Get(we)
		st, step := exec.State.Advance(dt)

		for _, p := range step.Entered {
			kind := EnteredActive
			if p == move.Recovery {
				kind = EnteredRecovery
			}
			PhaseEvents.Publish(w.World, PhaseEvent{
				Kind:   kind,
				Actor:  exec.Actor,
				Weapon: we.Entity(),
				Move:   step.Previous.ID,
			})
		}

		switch {
		case step.Completed:
			completed = append(completed, we)
			continue
		case step.Chained:
			w.beginMove(exec.Actor, we.Entity(), st.Meta)
			w.Log.Debug("move chained",
				entityField("actor", exec.Actor),
				zap.Stringer("from", step.Previous.ID),
				zap.Stringer("to", st.Meta.ID))
		}
		exec.State = st

		if st.Phase == move.Active {
			w.animate(we, st)
		}
	}

	for _, we := range completed {
		actor := ExecutingComponent.Get(we).Actor
		we.RemoveComponent(ExecutingComponent)
		pose := WeaponPoseComponent.Get(we)
		pose.Current = pose.Rest
		if ae := w.entry(actor); ae != nil && ae.HasComponent(ActiveMoveComponent) {
			ae.RemoveComponent(ActiveMoveComponent)
		}
		w.Log.Debug("move completed", entityField("actor", actor))
	}

	PhaseEvents.ProcessEvents(w.World)
}

// animate poses the weapon along its move's curve and extends the trail.
func (w *World) animate(we *donburi.Entry, st move.State) {
	curve, ok := w.Curves.Lookup(st.Meta.ID)
	if !ok {
		w.Log.Warn("no animation curve", zap.Stringer("move", st.Meta.ID))
		return
	}
	offset, rot := curve(st.ActiveProgress(), st.Meta.Radius)
	pose := WeaponPoseComponent.Get(we)
	pose.Current = geom.Transform{
		Position: pose.Rest.Position.Add(offset),
		Rotation: pose.Rest.Rotation + rot,
	}

	actor := ExecutingComponent.Get(we).Actor
	trail, ok := w.Refs.Trail(actor)
	if !ok {
		return
	}
	te := w.entry(trail)
	if te == nil || !TrailComponent.Get(te).Visible {
		return
	}
	if tip, ok := w.ColliderCenter(we.Entity()); ok {
		ta := TrailComponent.Get(te)
		ta.Points = append(ta.Points, tip)
		if len(ta.Points) > TrailLength {
			ta.Points = ta.Points[len(ta.Points)-TrailLength:]
		}
	}
}

func (w *World) onPhaseCollider(e PhaseEvent) {
	collider, ok := w.Refs.Collider(e.Weapon)
	if !ok {
		w.Log.Warn("weapon has no collider", entityField("weapon", e.Weapon))
		return
	}
	ce := w.entry(collider)
	if ce == nil {
		return
	}
	c := ColliderComponent.Get(ce)
	c.Enabled = e.Kind == EnteredActive
	if c.Enabled {
		c.Hit = make(map[donburi.Entity]struct{})
	}
}

func (w *World) onPhaseTrail(e PhaseEvent) {
	trail, ok := w.Refs.Trail(e.Actor)
	if !ok {
		w.Log.Warn("actor has no trail", entityField("actor", e.Actor))
		return
	}
	te := w.entry(trail)
	if te == nil {
		return
	}
	ta := TrailComponent.Get(te)
	ta.Visible = e.Kind == EnteredActive
	ta.Points = ta.Points[:0]
}

// WeaponTransform is the weapon's current world transform.
func (w *World) WeaponTransform(weapon donburi.Entity) (geom.Transform, bool) {
	we := w.entry(weapon)
	if we == nil {
		return geom.Transform{}, false
	}
	actor, ok := w.Refs.Actor(weapon)
	if !ok {
		return geom.Transform{}, false
	}
	ae := w.entry(actor)
	if ae == nil {
		return geom.Transform{}, false
	}
	return TransformComponent.GetValue(ae).Compose(WeaponPoseComponent.GetValue(we).Current), true
}

// ColliderCenter is the world position of the weapon's hit-collider.
func (w *World) ColliderCenter(weapon donburi.Entity) (geom.Vec2, bool) {
	wt, ok := w.WeaponTransform(weapon)
	if !ok {
		return geom.Vec2{}, false
	}
	collider, ok := w.Refs.Collider(weapon)
	if !ok {
		return geom.Vec2{}, false
	}
	ce := w.entry(collider)
	if ce == nil {
		return geom.Vec2{}, false
	}
	return wt.Apply(ColliderComponent.Get(ce).Offset), true
}

// Contact is a collision between an enabled hit-collider and a body.
type Contact struct {
	Collider donburi.Entity
	Target   donburi.Entity
}

// DetectCollisions tests enabled colliders against opposing living bodies.
// A body is reported at most once per collider activation.
func DetectCollisions(w *World) []Contact {
	bodies := sortedEntries(w, actors)
	var contacts []Contact
	for _, ce := range sortedEntries(w, colliders) {
		c := ColliderComponent.Get(ce)
		if !c.Enabled {
			continue
		}
		weapon, ok := w.Refs.ColliderWeapon(ce.Entity())
		if !ok {
			w.Log.Warn("collider has no weapon", entityField("collider", ce.Entity()))
			continue
		}
		owner, ok := w.Refs.Actor(weapon)
		if !ok {
			w.Log.Warn("weapon has no actor", entityField("weapon", weapon))
			continue
		}
		oe := w.entry(owner)
		if oe == nil {
			continue
		}
		center, ok := w.ColliderCenter(weapon)
		if !ok {
			continue
		}
		faction := FactionComponent.GetValue(oe)

		for _, be := range bodies {
			target := be.Entity()
			if target == owner || FactionComponent.GetValue(be) == faction || HealthComponent.Get(be).Dead() {
				continue
			}
			if _, hit := c.Hit[target]; hit {
				continue
			}
			reach := c.Radius + BodyComponent.Get(be).Radius
			if geom.Distance(center, TransformComponent.Get(be).Position) <= reach {
				c.Hit[target] = struct{}{}
				contacts = append(contacts, Contact{Collider: ce.Entity(), Target: target})
			}
		}
	}
	return contacts
}

// ResolveCollision applies damage, knockback and hit-stun for one contact.
func ResolveCollision(w *World, ct Contact) {
	ce, te := w.entry(ct.Collider), w.entry(ct.Target)
	if ce == nil || te == nil {
		return
	}
	if _, ok := w.Refs.ColliderWeapon(ct.Collider); !ok {
		return
	}
	dmg := DamageComponent.GetValue(ce)
	source := donburi.Entity(dmg.Source)
	se := w.entry(source)
	if se == nil {
		return
	}

	var moveRate float64
	if se.HasComponent(ActiveMoveComponent) {
		moveRate = ActiveMoveComponent.Get(se).Meta.CriticalRate
	}
	hit := w.Tunables.Critical.Roll(w.RNG, dmg, moveRate)

	health := HealthComponent.Get(te)
	old := *health
	*health = health.Take(hit.Amount)
	kind := HpDamage
	if hit.Critical {
		kind = HpCritical
	}

	kb := KnockbackComponent.GetValue(ce)
	from := TransformComponent.Get(se).Position
	to := TransformComponent.Get(te).Position
	vel := VelocityComponent.Get(te)
	vel.Vec2 = vel.Add(combat.Impulse(from, to, kb.Force))

	timer := combat.NewKnockbackTimer(kb, w.Tunables.KnockbackDamping)
	if te.HasComponent(KnockbackTimerComponent) {
		KnockbackTimerComponent.SetValue(te, timer)
	} else {
		donburi.Add(te, KnockbackTimerComponent, &timer)
	}
	stun := combat.Stun{Remaining: w.Tunables.HitStun}
	if stun.Remaining > 0 {
		if te.HasComponent(StunComponent) {
			StunComponent.SetValue(te, stun)
		} else {
			donburi.Add(te, StunComponent, &stun)
		}
	}

	w.Log.Info("hit",
		entityField("source", source),
		entityField("target", ct.Target),
		zap.Int("damage", hit.Amount),
		zap.Bool("critical", hit.Critical),
		zap.Float64("force", kb.Force))

	HpEvents.Publish(w.World, HpChange{
		Entity: ct.Target,
		Source: source,
		Old:    old.Current,
		New:    health.Current,
		Max:    health.Max,
		Kind:   kind,
		Type:   hit.Type,
	})
}

// ResolveCollisions detects contacts, resolves each and drains the HP
// outbox. Step 7.
func ResolveCollisions(w *World) []Contact {
	contacts := DetectCollisions(w)
	for _, ct := range contacts {
		ResolveCollision(w, ct)
	}
	HpEvents.ProcessEvents(w.World)
	return contacts
}

func (w *World) onDeath(c HpChange) {
	if !c.Died() {
		return
	}
	owned := w.Refs.Forget(c.Entity)
	for _, e := range append(owned, c.Entity) {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
	w.Log.Info("died", entityField("actor", c.Entity), entityField("killer", c.Source))
}

// onLifesteal heals a calm berserker by the damage it just dealt and
// publishes the heal.
func (w *World) onLifesteal(c HpChange) {
	if c.Kind == HpHeal {
		return
	}
	dealt := c.Old - c.New
	if dealt <= 0 {
		return
	}
	se := w.entry(c.Source)
	if se == nil || !se.HasComponent(BerserkerComponent) {
		return
	}
	if BerserkerComponent.Get(se).Raging {
		w.Log.Debug("raging, no lifesteal", entityField("actor", c.Source))
		return
	}
	health := HealthComponent.Get(se)
	old := *health
	healed, restored := health.Heal(dealt)
	if restored == 0 {
		return
	}
	*health = healed
	w.Log.Info("lifesteal",
		entityField("actor", c.Source),
		zap.Int("from", old.Current),
		zap.Int("to", healed.Current))
	HpEvents.Publish(w.World, HpChange{
		Entity: c.Source,
		Source: c.Source,
		Old:    old.Current,
		New:    healed.Current,
		Max:    healed.Max,
		Kind:   HpHeal,
	})
}

func (w *World) onRage(e BerserkerToggle) {
	ae := w.entry(e.Actor)
	if ae == nil || !ae.HasComponent(BerserkerComponent) {
		w.Log.Warn("rage for actor without berserker", entityField("actor", e.Actor))
		return
	}
	b := BerserkerComponent.Get(ae)
	b.Raging = !b.Raging
	w.Log.Info("rage", entityField("actor", e.Actor), zap.Bool("raging", b.Raging))
}

// HandleRage drains the rage toggles. Runs with the move requests.
func HandleRage(w *World) {
	RageEvents.ProcessEvents(w.World)
}

// UpdateKnockbackTimers counts knockback timers down; on expiry velocity
// is damped once and the timer removed. Step 8.
func UpdateKnockbackTimers(w *World, dt float64) {
	var expired []*donburi.Entry
	knocked.Each(w.World, func(e *donburi.Entry) {
		t := KnockbackTimerComponent.Get(e)
		next, done := t.Tick(dt)
		*t = next
		if done {
			expired = append(expired, e)
		}
	})
	for _, e := range expired {
		vel := VelocityComponent.Get(e)
		vel.Vec2 = vel.Scale(KnockbackTimerComponent.Get(e).Damping)
		e.RemoveComponent(KnockbackTimerComponent)
	}
}

// UpdateStuns counts hit-stun down and removes it when spent. Step 8.
func UpdateStuns(w *World, dt float64) {
	var expired []*donburi.Entry
	stunned.Each(w.World, func(e *donburi.Entry) {
		s := StunComponent.Get(e)
		next, done := s.Tick(dt)
		*s = next
		if done {
			expired = append(expired, e)
		}
	})
	for _, e := range expired {
		e.RemoveComponent(StunComponent)
	}
}

// UpdateFacing turns Locked actors to face their target, Free AI actors
// toward where they walk (or their target while holding ground), and the
// player toward its walking direction. Step 9.
func UpdateFacing(w *World, dt float64) {
	for _, e := range sortedEntries(w, detectors) {
		det := TargetComponent.GetValue(e)
		if det.Lock != ai.Locked || !det.HasTarget() {
			continue
		}
		self, ok := w.Refs.Transform(e.Entity())
		if !ok {
			continue
		}
		target, ok := w.Refs.Transform(donburi.Entity(det.Target))
		if !ok {
			w.Log.Warn("locked target has no transform snapshot",
				entityField("actor", e.Entity()),
				zap.Uint64("target", uint64(det.Target)))
			continue
		}
		TransformComponent.Get(e).Rotation = geom.FacingAngle(self.Position, target.Position)
	}

	for _, e := range sortedEntries(w, aiActors) {
		det := TargetComponent.GetValue(e)
		if det.Lock == ai.Locked || e.HasComponent(StunComponent) {
			continue
		}
		t := TransformComponent.Get(e)
		dir := LocomotionComponent.Get(e).Direction
		if dir.IsZero() && det.HasTarget() {
			if target, ok := w.Refs.Transform(donburi.Entity(det.Target)); ok {
				dir = target.Position.Sub(t.Position)
			}
		}
		if dir.IsZero() {
			continue
		}
		speed := AIComponent.Get(e).TurnSpeed
		if speed <= 0 {
			speed = DefaultAITurnSpeed
		}
		t.Rotation = geom.TurnToward(t.Rotation, geom.FacingAngle(geom.Vec2{}, dir), speed*dt)
	}

	players.Each(w.World, func(e *donburi.Entry) {
		if e.HasComponent(TargetComponent) {
			if det := TargetComponent.GetValue(e); det.Lock == ai.Locked && det.HasTarget() {
				return
			}
		}
		dir := LocomotionComponent.Get(e).Direction
		if dir.IsZero() || e.HasComponent(StunComponent) {
			return
		}
		t := TransformComponent.Get(e)
		want := geom.FacingAngle(geom.Vec2{}, dir)
		t.Rotation = geom.TurnToward(t.Rotation, want, PlayerComponent.Get(e).TurnSpeed*dt)
	})
}
