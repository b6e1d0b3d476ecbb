package model

import "testing"

func TestPlanLimits(t *testing.T) {
	free := &Subscription{PlanID: SubscriptionPlanFree, Status: SubscriptionStatusActive}
	pro := &Subscription{PlanID: SubscriptionPlanPro, Status: SubscriptionStatusActive}

	if got := free.ActiveCycleLimit(); got != 1 {
		t.Errorf("free ActiveCycleLimit = %d, want 1", got)
	}
	if got := free.GoalLimit(); got != 5 {
		t.Errorf("free GoalLimit = %d, want 5", got)
	}
	if got := pro.ActiveCycleLimit(); got != -1 {
		t.Errorf("pro ActiveCycleLimit = %d, want -1 (unlimited)", got)
	}
	if got := pro.GoalLimit(); got != -1 {
		t.Errorf("pro GoalLimit = %d, want -1 (unlimited)", got)
	}
}

func TestHasFeature(t *testing.T) {
	free := &Subscription{PlanID: SubscriptionPlanFree, Status: SubscriptionStatusActive}
	pro := &Subscription{PlanID: SubscriptionPlanPro, Status: SubscriptionStatusActive}
	cancelled := &Subscription{PlanID: SubscriptionPlanPro, Status: SubscriptionStatusCancelled}

	if free.HasFeature(FeatureAICoach) {
		t.Error("free plan should not have AI coach")
	}
	if free.HasFeature(FeatureExport) {
		t.Error("free plan should not have export")
	}
	if !pro.HasFeature(FeatureAICoach) || !pro.HasFeature(FeatureExport) {
		t.Error("pro plan should have AI coach and export")
	}
	if cancelled.HasFeature(FeatureAICoach) {
		t.Error("cancelled pro should lose paid features")
	}
}
